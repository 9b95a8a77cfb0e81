package handlers

import (
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const BasePath = "/api/tasks"

type RouterConfig struct {
	// AllowedOrigins for CORS; "*" allows any origin.
	AllowedOrigins []string
	// Assets holds the browser client (index.html, script.js, style.css).
	// Nil disables the static routes.
	Assets fs.FS
}

func NewRouter(service TaskService, cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(CORS(cfg.AllowedOrigins))

	h := NewTaskHandler(service)

	tasks := r.Group(BasePath)
	tasks.GET("", h.List)
	// before /:id so the literal is never parsed as an id
	tasks.GET("/stats", h.Stats)
	tasks.POST("", h.Create)
	tasks.PUT("/:id", h.Update)
	tasks.DELETE("/:id", h.Delete)

	r.GET("/healthz", h.Health)

	if cfg.Assets != nil {
		mountClient(r, cfg.Assets)
	}

	return r
}

func mountClient(r *gin.Engine, assets fs.FS) {
	index, err := fs.ReadFile(assets, "index.html")
	if err != nil {
		log.Printf("browser client disabled: %v", err)
		return
	}

	// http.FileServer redirects */index.html, so the page is served as bytes.
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	r.StaticFS("/assets", http.FS(assets))
}
