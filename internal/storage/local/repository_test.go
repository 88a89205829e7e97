package local

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskswift/internal/models"
	"github.com/adanyl0v/taskswift/internal/query"
	"github.com/adanyl0v/taskswift/internal/services"
)

var _ services.Repository = (*Repository)(nil)

func blobStores(t *testing.T) map[string]BlobStore {
	t.Helper()

	files, err := NewFileBlobStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	db, err := NewSQLiteBlobStore(filepath.Join(t.TempDir(), "db", "taskswift.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]BlobStore{
		"file":   files,
		"sqlite": db,
	}
}

func newTask(title string, createdAt time.Time) *models.Task {
	return &models.Task{
		Title:     title,
		Priority:  models.PriorityMedium,
		Category:  models.CategoryPersonal,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)

	for name, blobs := range blobStores(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(zerolog.Nop(), blobs)

			empty, err := repo.List(ctx, services.ListParams{})
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)

			a, err := repo.Create(ctx, newTask("A", base))
			require.NoError(t, err)
			b, err := repo.Create(ctx, newTask("B", base.Add(time.Minute)))
			require.NoError(t, err)
			assert.NotEmpty(t, a.ID)
			assert.NotEqual(t, a.ID, b.ID)

			done := true
			ok, err := repo.Update(ctx, a.ID, models.TaskPatch{Completed: &done}, base.Add(time.Hour))
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = repo.Update(ctx, "missing", models.TaskPatch{Completed: &done}, base)
			require.NoError(t, err)
			assert.False(t, ok)

			completed, err := repo.List(ctx, services.ListParams{Filter: query.FilterCompleted})
			require.NoError(t, err)
			require.Len(t, completed, 1)
			assert.Equal(t, a.ID, completed[0].ID)
			assert.Equal(t, base.Add(time.Hour), completed[0].UpdatedAt)

			all, err := repo.List(ctx, services.ListParams{Sort: query.SortDateCreated})
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "B", all[0].Title)

			ok, err = repo.Delete(ctx, b.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = repo.Delete(ctx, b.ID)
			require.NoError(t, err)
			assert.False(t, ok)

			loaded, err := repo.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, loaded, 1)
			assert.Equal(t, "A", loaded[0].Title)
		})
	}
}

func TestRepositoryUnknownIDOnEmptyStore(t *testing.T) {
	ctx := context.Background()

	for name, blobs := range blobStores(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(zerolog.Nop(), blobs)

			ok, err := repo.Delete(ctx, "nothing")
			require.NoError(t, err)
			assert.False(t, ok)

			raw, err := blobs.Get(ctx, TasksKey)
			require.NoError(t, err)
			assert.Nil(t, raw)
		})
	}
}

func TestSaveAllLastCallWins(t *testing.T) {
	ctx := context.Background()
	due := models.NewDate(2025, time.March, 9)

	for name, blobs := range blobStores(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(zerolog.Nop(), blobs)

			first := []*models.Task{{ID: "1", Title: "one"}, {ID: "2", Title: "two"}}
			require.NoError(t, repo.SaveAll(ctx, first))

			second := []*models.Task{{ID: "3", Title: "three", DueDate: &due}}
			require.NoError(t, repo.SaveAll(ctx, second))

			loaded, err := repo.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, loaded, 1)
			assert.Equal(t, "three", loaded[0].Title)
			require.NotNil(t, loaded[0].DueDate)
			assert.Equal(t, due, *loaded[0].DueDate)
		})
	}
}

func TestFileBlobStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileBlobStore(dir)
	require.NoError(t, err)
	repo := NewRepository(zerolog.Nop(), first)
	created, err := repo.Create(ctx, newTask("persisted", time.Now()))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "tasks.json"))

	second, err := NewFileBlobStore(dir)
	require.NoError(t, err)
	loaded, err := NewRepository(zerolog.Nop(), second).LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, created.ID, loaded[0].ID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestFileBlobStoreConcurrentModify(t *testing.T) {
	ctx := context.Background()
	blobs, err := NewFileBlobStore(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(zerolog.Nop(), blobs)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, newTask("concurrent", time.Now()))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, n)
}

func TestLoadAllRejectsCorruptBlob(t *testing.T) {
	ctx := context.Background()
	blobs, err := NewFileBlobStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, blobs.Put(ctx, TasksKey, []byte("{not json")))

	_, err = NewRepository(zerolog.Nop(), blobs).LoadAll(ctx)
	assert.ErrorContains(t, err, "failed to decode tasks")
}

func TestLoadAllReadsWebClientBlob(t *testing.T) {
	ctx := context.Background()
	blobs, err := NewFileBlobStore(t.TempDir())
	require.NoError(t, err)

	const exported = `[
  {"id":"1718000000000","title":"Buy cat food","description":"","dueDate":"2024-06-20",
   "priority":"high","category":"shopping","completed":false,"createdAt":"2024-06-10T08:30:00.000Z"},
  {"id":"1718000000001","title":"Call mom","description":"weekly","dueDate":"",
   "priority":"low","category":"personal","completed":true,
   "createdAt":"2024-06-10T08:31:00.000Z","updatedAt":"2024-06-11T19:00:00.000Z"}
]`
	require.NoError(t, blobs.Put(ctx, TasksKey, []byte(exported)))

	repo := NewRepository(zerolog.Nop(), blobs)
	tasks, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	cat := tasks[0]
	assert.Equal(t, "1718000000000", cat.ID)
	require.NotNil(t, cat.DueDate)
	assert.Equal(t, "2024-06-20", cat.DueDate.String())
	assert.Equal(t, models.PriorityHigh, cat.Priority)
	assert.Equal(t, time.Date(2024, time.June, 10, 8, 30, 0, 0, time.UTC), cat.CreatedAt.UTC())
	assert.Equal(t, cat.CreatedAt, cat.UpdatedAt)

	mom := tasks[1]
	assert.Nil(t, mom.DueDate)
	assert.True(t, mom.Completed)
	assert.Equal(t, time.Date(2024, time.June, 11, 19, 0, 0, 0, time.UTC), mom.UpdatedAt.UTC())

	require.NoError(t, repo.SaveAll(ctx, tasks))
	data, err := blobs.Get(ctx, TasksKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dueDate":"2024-06-20"`)
	assert.Contains(t, string(data), `"createdAt":"2024-06-10T08:30:00Z"`)
	assert.NotContains(t, string(data), "due_date")
}
