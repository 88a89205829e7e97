package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/taskswift/internal/models"
	"github.com/adanyl0v/taskswift/internal/query"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrPersistence  = errors.New("persistence failure")
	ErrRejected     = errors.New("write rejected by backing store")
)

// PersistenceError wraps a failed or rejected repository call. The store
// state is unchanged when it is returned, so the operation can be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "failed to " + e.Op + " tasks: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

type TaskService interface {
	// Load replaces the in-memory collection with the repository contents.
	//
	// It returns a *PersistenceError and keeps the previous collection
	// if the repository cannot be read.
	Load(ctx context.Context) ([]*models.Task, error)

	// Add creates a task from validated input.
	//
	// The repository assigns the ID. Nothing is added to the collection
	// if it returns an error.
	Add(ctx context.Context, input models.TaskInput) (*models.Task, error)

	// Update applies the patch to the task with the given ID.
	//
	// It returns ErrTaskNotFound if the ID is unknown or a
	// *PersistenceError if the repository fails or rejects the write.
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)

	// ToggleComplete flips the completion state of the task.
	ToggleComplete(ctx context.Context, id string) (*models.Task, error)

	// Remove deletes the task from the collection and the repository.
	//
	// It returns ErrTaskNotFound if the ID is unknown or a
	// *PersistenceError if the repository fails or rejects the delete.
	Remove(ctx context.Context, id string) error

	Get(id string) (*models.Task, error)
	Tasks() []*models.Task
	View(params query.Params) []*models.Task
	Stats() models.Stats
}

// Repository is the persistence collaborator of the task store.
type Repository interface {
	// List returns an empty slice, not an error, when nothing matches.
	List(ctx context.Context, params ListParams) ([]*models.Task, error)
	// Create stores a new task and returns it with its assigned ID.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch, updatedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ListParams struct {
	Filter query.Filter
	Sort   query.SortKey
}
