package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskswift/internal/models"
	"github.com/adanyl0v/taskswift/internal/query"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	repo   Repository
	engine *query.Engine
	now    func() time.Time

	// mutateMu serializes mutations across the repository round-trip,
	// mu guards tasks.
	mutateMu sync.Mutex
	mu       sync.RWMutex
	tasks    []*models.Task
}

type Option func(*taskServiceImpl)

func WithQueryEngine(engine *query.Engine) Option {
	return func(s *taskServiceImpl) {
		s.engine = engine
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *taskServiceImpl) {
		s.now = now
	}
}

func NewTaskService(
	logger zerolog.Logger,
	repo Repository,
	opts ...Option,
) TaskService {
	s := &taskServiceImpl{
		logger: logger,
		repo:   repo,
		engine: query.NewEngineForLanguage("en"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *taskServiceImpl) Load(ctx context.Context) ([]*models.Task, error) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	tasks, err := s.repo.List(ctx, ListParams{
		Filter: query.FilterAll,
		Sort:   query.SortDateCreated,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	loaded := make([]*models.Task, len(tasks))
	for i, t := range tasks {
		loaded[i] = t.Clone()
	}

	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()

	s.logger.Info().
		Int("count", len(loaded)).
		Msg("loaded tasks")
	return cloneAll(loaded), nil
}

func (s *taskServiceImpl) Add(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	now := s.now()
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.DueDate != nil && !input.DueDate.IsZero() {
		due := *input.DueDate
		task.DueDate = &due
	}
	if task.Priority == "" {
		task.Priority = models.DefaultPriority
	}
	if task.Category == "" {
		task.Category = models.DefaultCategory
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create task")
		return nil, &PersistenceError{Op: "create", Err: err}
	}
	created = created.Clone()

	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.mu.Unlock()

	s.logger.Info().
		Str("task_id", created.ID).
		Msg("created task")
	return created.Clone(), nil
}

func (s *taskServiceImpl) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	return s.update(ctx, id, func(*models.Task) models.TaskPatch {
		return patch
	})
}

func (s *taskServiceImpl) ToggleComplete(ctx context.Context, id string) (*models.Task, error) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	return s.update(ctx, id, func(current *models.Task) models.TaskPatch {
		completed := !current.Completed
		return models.TaskPatch{Completed: &completed}
	})
}

// update must be called with mutateMu held.
func (s *taskServiceImpl) update(
	ctx context.Context,
	id string,
	patchFor func(current *models.Task) models.TaskPatch,
) (*models.Task, error) {
	s.mu.RLock()
	idx := s.indexOf(id)
	var updated *models.Task
	if idx >= 0 {
		updated = s.tasks[idx].Clone()
	}
	s.mu.RUnlock()

	if updated == nil {
		s.logger.Error().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	patch := patchFor(updated)
	updatedAt := s.now()
	patch.Apply(updated, updatedAt)

	ok, err := s.repo.Update(ctx, id, patch, updatedAt)
	if err == nil && !ok {
		err = ErrRejected
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return nil, &PersistenceError{Op: "update", Err: err}
	}

	s.mu.Lock()
	// Mutations are serialized, so idx is still valid.
	s.tasks[idx] = updated
	s.mu.Unlock()

	s.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	return updated.Clone(), nil
}

func (s *taskServiceImpl) Remove(ctx context.Context, id string) error {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.mu.RLock()
	idx := s.indexOf(id)
	s.mu.RUnlock()

	if idx < 0 {
		s.logger.Error().
			Str("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	ok, err := s.repo.Delete(ctx, id)
	if err == nil && !ok {
		err = ErrRejected
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return &PersistenceError{Op: "delete", Err: err}
	}

	s.mu.Lock()
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	s.mu.Unlock()

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) Get(id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}
	return s.tasks[idx].Clone(), nil
}

func (s *taskServiceImpl) Tasks() []*models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.tasks)
}

func (s *taskServiceImpl) View(params query.Params) []*models.Task {
	return s.engine.Apply(s.Tasks(), params)
}

func (s *taskServiceImpl) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.ComputeStats(s.tasks)
}

func (s *taskServiceImpl) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
