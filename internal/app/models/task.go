package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength matches the width of the title column, in characters.
const MaxTitleLength = 255

type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Stats struct {
	Completed   int64 `json:"completed"`
	Uncompleted int64 `json:"uncompleted"`
}

// Total is the number of tasks the counts were taken over.
func (s Stats) Total() int64 {
	return s.Completed + s.Uncompleted
}

type TaskAction string

const (
	TaskCreated TaskAction = "created"
	TaskUpdated TaskAction = "updated"
	TaskDeleted TaskAction = "deleted"
)

// TaskEvent is published after every successful mutation.
type TaskEvent struct {
	ID     uuid.UUID  `json:"id"`
	Action TaskAction `json:"action"`
	Task   Task       `json:"task"`
	At     time.Time  `json:"at"`
}

func NewTaskEvent(action TaskAction, task Task) TaskEvent {
	return TaskEvent{
		ID:     uuid.New(),
		Action: action,
		Task:   task,
		At:     time.Now().UTC(),
	}
}
