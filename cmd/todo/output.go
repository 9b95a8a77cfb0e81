package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"golang.org/x/term"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

type printer struct {
	w     io.Writer
	color bool
}

// newPrinter enables colour only when w is a terminal.
func newPrinter(w io.Writer) *printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &printer{w: w, color: color}
}

func (p *printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + colorReset
}

func (p *printer) green(s string) string  { return p.paint(colorGreen, s) }
func (p *printer) yellow(s string) string { return p.paint(colorYellow, s) }
func (p *printer) gray(s string) string   { return p.paint(colorGray, s) }

func (p *printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) task(t models.Task) {
	if t.Completed {
		p.line(p.gray(fmt.Sprintf("[x] %d  %s", t.ID, t.Title)))
		return
	}
	p.line(fmt.Sprintf("[ ] %d  %s", t.ID, t.Title))
}
