package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"github.com/lia-xyz/to-do-list-app/internal/app/repositories"
	"github.com/lia-xyz/to-do-list-app/internal/app/services"
)

type mockTaskRepository struct {
	listFn         func(ctx context.Context, completed *bool) ([]models.Task, error)
	statsFn        func(ctx context.Context) (models.Stats, error)
	createFn       func(ctx context.Context, title string) (models.Task, error)
	setCompletedFn func(ctx context.Context, id int64, completed bool) (models.Task, error)
	deleteFn       func(ctx context.Context, id int64) (int64, error)
}

func (m *mockTaskRepository) List(ctx context.Context, completed *bool) ([]models.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, completed)
	}
	return []models.Task{}, nil
}

func (m *mockTaskRepository) Stats(ctx context.Context) (models.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return models.Stats{}, nil
}

func (m *mockTaskRepository) Create(ctx context.Context, title string) (models.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, title)
	}
	return models.Task{ID: 1, Title: title}, nil
}

func (m *mockTaskRepository) SetCompleted(ctx context.Context, id int64, completed bool) (models.Task, error) {
	if m.setCompletedFn != nil {
		return m.setCompletedFn(ctx, id, completed)
	}
	return models.Task{ID: id, Completed: completed}, nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id int64) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return id, nil
}

func (m *mockTaskRepository) Ping(context.Context) error { return nil }

type mockTaskCache struct {
	getTaskListFn func(ctx context.Context, completed *bool) ([]models.Task, error)
	setTaskListFn func(ctx context.Context, completed *bool, tasks []models.Task, ttl time.Duration) error
	getStatsFn    func(ctx context.Context) (*models.Stats, error)
	setStatsFn    func(ctx context.Context, stats models.Stats, ttl time.Duration) error
	invalidateFn  func(ctx context.Context) error
}

func (m *mockTaskCache) GetTaskList(ctx context.Context, completed *bool) ([]models.Task, error) {
	if m.getTaskListFn != nil {
		return m.getTaskListFn(ctx, completed)
	}
	return nil, nil
}

func (m *mockTaskCache) SetTaskList(ctx context.Context, completed *bool, tasks []models.Task, ttl time.Duration) error {
	if m.setTaskListFn != nil {
		return m.setTaskListFn(ctx, completed, tasks, ttl)
	}
	return nil
}

func (m *mockTaskCache) GetStats(ctx context.Context) (*models.Stats, error) {
	if m.getStatsFn != nil {
		return m.getStatsFn(ctx)
	}
	return nil, nil
}

func (m *mockTaskCache) SetStats(ctx context.Context, stats models.Stats, ttl time.Duration) error {
	if m.setStatsFn != nil {
		return m.setStatsFn(ctx, stats, ttl)
	}
	return nil
}

func (m *mockTaskCache) Invalidate(ctx context.Context) error {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx)
	}
	return nil
}

type recordingPublisher struct {
	events []models.TaskEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev models.TaskEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

var errDB = errors.New("connection refused")

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims title and publishes", func(t *testing.T) {
		var stored string
		repo := &mockTaskRepository{
			createFn: func(_ context.Context, title string) (models.Task, error) {
				stored = title
				return models.Task{ID: 42, Title: title}, nil
			},
		}
		invalidated := 0
		cache := &mockTaskCache{invalidateFn: func(context.Context) error { invalidated++; return nil }}
		pub := &recordingPublisher{}

		svc := services.NewTaskService(repo, services.WithCache(cache, time.Second), services.WithEvents(pub))
		task, err := svc.Create(ctx, "  Buy milk \n")
		require.NoError(t, err)

		assert.Equal(t, "Buy milk", stored)
		assert.Equal(t, models.Task{ID: 42, Title: "Buy milk"}, task)
		assert.Equal(t, 1, invalidated)
		require.Len(t, pub.events, 1)
		assert.Equal(t, models.TaskCreated, pub.events[0].Action)
		assert.Equal(t, int64(42), pub.events[0].Task.ID)
	})

	t.Run("blank title never reaches the store", func(t *testing.T) {
		repo := &mockTaskRepository{
			createFn: func(context.Context, string) (models.Task, error) {
				t.Fatal("store must not be called")
				return models.Task{}, nil
			},
		}
		svc := services.NewTaskService(repo)

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := svc.Create(ctx, title)
			assert.ErrorIs(t, err, services.ErrEmptyTitle)
		}
	})

	t.Run("title length is counted in characters", func(t *testing.T) {
		var stored string
		repo := &mockTaskRepository{
			createFn: func(_ context.Context, title string) (models.Task, error) {
				stored = title
				return models.Task{ID: 1, Title: title}, nil
			},
		}
		svc := services.NewTaskService(repo)

		longest := strings.Repeat("ж", models.MaxTitleLength)
		_, err := svc.Create(ctx, " "+longest+" ")
		require.NoError(t, err)
		assert.Equal(t, longest, stored)

		stored = ""
		_, err = svc.Create(ctx, longest+"x")
		assert.ErrorIs(t, err, services.ErrTitleTooLong)
		assert.Empty(t, stored)
	})

	t.Run("store failure skips invalidation and events", func(t *testing.T) {
		repo := &mockTaskRepository{
			createFn: func(context.Context, string) (models.Task, error) { return models.Task{}, errDB },
		}
		cache := &mockTaskCache{invalidateFn: func(context.Context) error {
			t.Fatal("cache must not be invalidated")
			return nil
		}}
		pub := &recordingPublisher{}

		svc := services.NewTaskService(repo, services.WithCache(cache, 0), services.WithEvents(pub))
		_, err := svc.Create(ctx, "title")
		assert.ErrorIs(t, err, errDB)
		assert.Empty(t, pub.events)
	})

	t.Run("publish failure does not fail the call", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker down")}
		svc := services.NewTaskService(&mockTaskRepository{}, services.WithEvents(pub))

		_, err := svc.Create(ctx, "title")
		assert.NoError(t, err)
		assert.Len(t, pub.events, 1)
	})
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the store", func(t *testing.T) {
		cached := []models.Task{{ID: 1, Title: "cached"}}
		repo := &mockTaskRepository{
			listFn: func(context.Context, *bool) ([]models.Task, error) {
				t.Fatal("store must not be called")
				return nil, nil
			},
		}
		cache := &mockTaskCache{
			getTaskListFn: func(context.Context, *bool) ([]models.Task, error) { return cached, nil },
		}

		tasks, err := services.NewTaskService(repo, services.WithCache(cache, 0)).List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, cached, tasks)
	})

	t.Run("miss reads store and fills cache", func(t *testing.T) {
		want := []models.Task{{ID: 2, Title: "done", Completed: true}}
		var gotFilter *bool
		repo := &mockTaskRepository{
			listFn: func(_ context.Context, completed *bool) ([]models.Task, error) {
				gotFilter = completed
				return want, nil
			},
		}
		var setTTL time.Duration
		cache := &mockTaskCache{
			setTaskListFn: func(_ context.Context, _ *bool, _ []models.Task, ttl time.Duration) error {
				setTTL = ttl
				return nil
			},
		}

		svc := services.NewTaskService(repo, services.WithCache(cache, 0))
		tasks, err := svc.List(ctx, models.FilterCompleted.Completed())
		require.NoError(t, err)
		assert.Equal(t, want, tasks)
		require.NotNil(t, gotFilter)
		assert.True(t, *gotFilter)
		assert.Equal(t, services.DefaultCacheTTL, setTTL)
	})

	t.Run("cache error falls back to store", func(t *testing.T) {
		cache := &mockTaskCache{
			getTaskListFn: func(context.Context, *bool) ([]models.Task, error) { return nil, errors.New("redis down") },
			setTaskListFn: func(context.Context, *bool, []models.Task, time.Duration) error { return errors.New("redis down") },
		}

		tasks, err := services.NewTaskService(&mockTaskRepository{}, services.WithCache(cache, 0)).List(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
	})

	t.Run("store error", func(t *testing.T) {
		repo := &mockTaskRepository{
			listFn: func(context.Context, *bool) ([]models.Task, error) { return nil, errDB },
		}
		_, err := services.NewTaskService(repo).List(ctx, nil)
		assert.ErrorIs(t, err, errDB)
	})
}

func TestTaskService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		cache := &mockTaskCache{
			getStatsFn: func(context.Context) (*models.Stats, error) {
				return &models.Stats{Completed: 1, Uncompleted: 2}, nil
			},
		}
		stats, err := services.NewTaskService(&mockTaskRepository{}, services.WithCache(cache, 0)).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.Stats{Completed: 1, Uncompleted: 2}, stats)
	})

	t.Run("store", func(t *testing.T) {
		repo := &mockTaskRepository{
			statsFn: func(context.Context) (models.Stats, error) {
				return models.Stats{Completed: 3}, nil
			},
		}
		stats, err := services.NewTaskService(repo).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Completed)
	})

	t.Run("store error", func(t *testing.T) {
		repo := &mockTaskRepository{
			statsFn: func(context.Context) (models.Stats, error) { return models.Stats{}, errDB },
		}
		_, err := services.NewTaskService(repo).Stats(ctx)
		assert.ErrorIs(t, err, errDB)
	})
}

func TestTaskService_SetCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		pub := &recordingPublisher{}
		svc := services.NewTaskService(&mockTaskRepository{}, services.WithEvents(pub))

		task, err := svc.SetCompleted(ctx, 5, true)
		require.NoError(t, err)
		assert.True(t, task.Completed)
		require.Len(t, pub.events, 1)
		assert.Equal(t, models.TaskUpdated, pub.events[0].Action)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockTaskRepository{
			setCompletedFn: func(context.Context, int64, bool) (models.Task, error) {
				return models.Task{}, repositories.ErrNotFound
			},
		}
		pub := &recordingPublisher{}
		_, err := services.NewTaskService(repo, services.WithEvents(pub)).SetCompleted(ctx, 99999, true)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.Empty(t, pub.events)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		pub := &recordingPublisher{}
		require.NoError(t, services.NewTaskService(&mockTaskRepository{}, services.WithEvents(pub)).Delete(ctx, 9))
		require.Len(t, pub.events, 1)
		assert.Equal(t, models.TaskDeleted, pub.events[0].Action)
		assert.Equal(t, int64(9), pub.events[0].Task.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockTaskRepository{
			deleteFn: func(context.Context, int64) (int64, error) { return 0, repositories.ErrNotFound },
		}
		err := services.NewTaskService(repo).Delete(ctx, 9)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
