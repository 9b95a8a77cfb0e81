package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"github.com/lia-xyz/to-do-list-app/internal/app/repositories"
)

// ErrEmptyTitle is returned by Create when the title is blank after trimming.
var ErrEmptyTitle = errors.New("title is required")

var ErrTitleTooLong = fmt.Errorf("title is longer than %d characters", models.MaxTitleLength)

const DefaultCacheTTL = 5 * time.Second

// EventPublisher receives an event after every successful mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event models.TaskEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, models.TaskEvent) error { return nil }

type TaskService struct {
	repo     repositories.TaskRepository
	cache    repositories.TaskCache
	events   EventPublisher
	cacheTTL time.Duration
}

type Option func(*TaskService)

func WithCache(cache repositories.TaskCache, ttl time.Duration) Option {
	return func(s *TaskService) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithEvents(p EventPublisher) Option {
	return func(s *TaskService) {
		s.events = p
	}
}

func NewTaskService(repo repositories.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		repo:     repo,
		cache:    repositories.NopTaskCache{},
		events:   nopPublisher{},
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List and Stats fill the cache after reading the store. A read that overlaps
// a mutation can cache the old result after Invalidate, so staleness is
// bounded by cacheTTL rather than zero.
func (s *TaskService) List(ctx context.Context, completed *bool) ([]models.Task, error) {
	if tasks, err := s.cache.GetTaskList(ctx, completed); err == nil && tasks != nil {
		return tasks, nil
	}

	tasks, err := s.repo.List(ctx, completed)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetTaskList(ctx, completed, tasks, s.cacheTTL)

	return tasks, nil
}

func (s *TaskService) Stats(ctx context.Context) (models.Stats, error) {
	if stats, err := s.cache.GetStats(ctx); err == nil && stats != nil {
		return *stats, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	_ = s.cache.SetStats(ctx, stats, s.cacheTTL)

	return stats, nil
}

func (s *TaskService) Create(ctx context.Context, title string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return models.Task{}, ErrTitleTooLong
	}

	task, err := s.repo.Create(ctx, title)
	if err != nil {
		return models.Task{}, err
	}

	s.changed(ctx, models.TaskCreated, task)
	return task, nil
}

func (s *TaskService) SetCompleted(ctx context.Context, id int64, completed bool) (models.Task, error) {
	task, err := s.repo.SetCompleted(ctx, id, completed)
	if err != nil {
		return models.Task{}, err
	}

	s.changed(ctx, models.TaskUpdated, task)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.changed(ctx, models.TaskDeleted, models.Task{ID: deleted})
	return nil
}

func (s *TaskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *TaskService) changed(ctx context.Context, action models.TaskAction, task models.Task) {
	_ = s.cache.Invalidate(ctx)

	if err := s.events.Publish(ctx, models.NewTaskEvent(action, task)); err != nil {
		log.Printf("publish %s event for task %d: %v", action, task.ID, err)
	}
}
