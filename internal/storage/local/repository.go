package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskswift/internal/models"
	"github.com/adanyl0v/taskswift/internal/query"
	"github.com/adanyl0v/taskswift/internal/services"
)

var errUnchanged = errors.New("unchanged")

// TasksKey is the key the whole collection is stored under.
const TasksKey = "tasks"

// Repository implements services.Repository on top of a BlobStore. Every
// write rewrites the whole collection.
type Repository struct {
	logger zerolog.Logger
	blobs  BlobStore
	newID  func() string
}

func NewRepository(logger zerolog.Logger, blobs BlobStore) *Repository {
	return &Repository{
		logger: logger,
		blobs:  blobs,
		newID:  uuid.NewString,
	}
}

// LoadAll returns the stored collection in insertion order.
func (r *Repository) LoadAll(ctx context.Context) ([]*models.Task, error) {
	data, err := r.blobs.Get(ctx, TasksKey)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to read tasks blob")
		return nil, err
	}
	return decode(data)
}

// SaveAll replaces the stored collection.
func (r *Repository) SaveAll(ctx context.Context, tasks []*models.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return err
	}

	err = r.blobs.Put(ctx, TasksKey, data)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to write tasks blob")
		return err
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("saved tasks blob")
	return nil
}

func (r *Repository) List(ctx context.Context, params services.ListParams) ([]*models.Task, error) {
	tasks, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(tasks, query.Params{Filter: params.Filter, Sort: params.Sort}), nil
}

func (r *Repository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	created := task.Clone()
	created.ID = r.newID()

	err := r.modify(ctx, func(tasks []*models.Task) ([]*models.Task, bool) {
		return append(tasks, created), true
	})
	if err != nil {
		return nil, err
	}
	r.logger.Debug().
		Str("task_id", created.ID).
		Msg("inserted task into blob")
	return created.Clone(), nil
}

func (r *Repository) Update(ctx context.Context, id string, patch models.TaskPatch, updatedAt time.Time) (bool, error) {
	var found bool
	err := r.modify(ctx, func(tasks []*models.Task) ([]*models.Task, bool) {
		for _, t := range tasks {
			if t.ID == id {
				patch.Apply(t, updatedAt)
				found = true
				break
			}
		}
		return tasks, found
	})
	return found, err
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	var found bool
	err := r.modify(ctx, func(tasks []*models.Task) ([]*models.Task, bool) {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.ID == id {
				found = true
				continue
			}
			kept = append(kept, t)
		}
		return kept, found
	})
	return found, err
}

// modify rewrites the blob with fn's result. Nothing is written when fn
// reports no change.
func (r *Repository) modify(ctx context.Context, fn func([]*models.Task) ([]*models.Task, bool)) error {
	err := r.blobs.Modify(ctx, TasksKey, func(old []byte) ([]byte, error) {
		tasks, err := decode(old)
		if err != nil {
			return nil, err
		}

		tasks, changed := fn(tasks)
		if !changed {
			return nil, errUnchanged
		}
		return encode(tasks)
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to modify tasks blob")
		return err
	}
	return nil
}

func decode(data []byte) ([]*models.Task, error) {
	if len(data) == 0 {
		return []*models.Task{}, nil
	}

	var tasks []*models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	for _, t := range tasks {
		normalize(t)
	}
	return tasks, nil
}

// normalize fills what the web client leaves out: it stores "" for no due
// date and omits updatedAt until the first edit.
func normalize(t *models.Task) {
	if t.DueDate != nil && t.DueDate.IsZero() {
		t.DueDate = nil
	}
	if !t.Priority.Valid() {
		t.Priority = models.DefaultPriority
	}
	if !t.Category.Valid() {
		t.Category = models.DefaultCategory
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
}

func encode(tasks []*models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []*models.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}
