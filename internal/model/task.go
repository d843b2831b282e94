package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a checklist entry inside a project. Its lifecycle is bound to the
// parent project.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTask builds an open task with a fresh identifier.
func NewTask(name string, now time.Time) Task {
	return Task{
		ID:        "task-" + uuid.New().String(),
		Name:      name,
		CreatedAt: now,
	}
}

// NewTasks builds one open task per non-blank name, preserving order.
func NewTasks(names []string, now time.Time) []Task {
	tasks := make([]Task, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		tasks = append(tasks, NewTask(name, now))
	}
	return tasks
}
