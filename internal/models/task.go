package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities by severity, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryOther:
		return true
	default:
		return false
	}
}

const (
	DefaultPriority = PriorityMedium
	DefaultCategory = CategoryPersonal
)

// Task field names follow the records the web client keeps under "tasks"
// in local storage, so an exported blob loads as is.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description,omitempty"`
	DueDate     *Date     `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Category    Category  `json:"category" yaml:"category"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// Overdue reports whether an open task's due date lies before the day of now.
func (t *Task) Overdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(DateOf(now).Time)
}

// TaskInput holds the validated fields of a task about to be created.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *Date
	Priority    Priority
	Category    Category
}

// TaskPatch holds the fields of an update. Nil fields are left unchanged and
// a non-nil zero DueDate clears the due date.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *Date
	Priority    *Priority
	Category    *Category
	Completed   *bool
}

// Apply writes the patch onto t and stamps UpdatedAt.
func (p TaskPatch) Apply(t *Task, updatedAt time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			d := *p.DueDate
			t.DueDate = &d
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = updatedAt
}

type Stats struct {
	Total        int `json:"total" yaml:"total"`
	Completed    int `json:"completed" yaml:"completed"`
	Pending      int `json:"pending" yaml:"pending"`
	HighPriority int `json:"high_priority" yaml:"high_priority"`
}

func ComputeStats(tasks []*Task) Stats {
	var s Stats
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
		if t.Priority == PriorityHigh {
			s.HighPriority++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
