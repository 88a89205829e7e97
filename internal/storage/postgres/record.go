package postgres

import (
	"strconv"
	"time"

	"github.com/adanyl0v/taskswift/internal/models"
)

// taskRecord mirrors a row of the tasks table.
type taskRecord struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	DueDate     *time.Time `db:"due_date"`
	Priority    string     `db:"priority"`
	Category    string     `db:"category"`
	Completed   bool       `db:"completed"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func newTaskRecord(t *models.Task) taskRecord {
	return taskRecord{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     dateValue(t.DueDate),
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r taskRecord) toTask() *models.Task {
	t := &models.Task{
		ID:          strconv.FormatInt(r.ID, 10),
		Title:       r.Title,
		Description: r.Description,
		Priority:    models.Priority(r.Priority),
		Category:    models.Category(r.Category),
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.DueDate != nil {
		due := models.DateOf(*r.DueDate)
		t.DueDate = &due
	}
	if !t.Priority.Valid() {
		t.Priority = models.DefaultPriority
	}
	if !t.Category.Valid() {
		t.Category = models.DefaultCategory
	}
	return t
}

// dateValue maps a missing or zero date to SQL NULL.
func dateValue(d *models.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	v := d.Time
	return &v
}
