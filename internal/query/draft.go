package query

import (
	"sort"
	"strings"

	"github.com/adanyl0v/taskswift/internal/models"
)

const (
	FieldTitle    = "title"
	FieldDueDate  = "dueDate"
	FieldPriority = "priority"
	FieldCategory = "category"
)

// Draft is the raw form input for a task.
type Draft struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	DueDate     string `json:"due_date" form:"due_date"`
	Priority    string `json:"priority" form:"priority"`
	Category    string `json:"category" form:"category"`
}

// DraftFromTask fills a draft from an existing task, as when opening it for
// editing.
func DraftFromTask(t *models.Task) Draft {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    string(t.Category),
	}
	if t.DueDate != nil {
		d.DueDate = t.DueDate.String()
	}
	return d
}

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f + ": " + e[f]
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate never fails; an empty result means the draft is valid.
func (d Draft) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(d.DueDate) != "" {
		if _, err := models.ParseDate(d.DueDate); err != nil {
			errs[FieldDueDate] = "Please enter a valid date"
		}
	}
	if p := strings.TrimSpace(d.Priority); p != "" && !models.Priority(p).Valid() {
		errs[FieldPriority] = "Priority must be one of low, medium, high"
	}
	if c := strings.TrimSpace(d.Category); c != "" && !models.Category(c).Valid() {
		errs[FieldCategory] = "Category must be one of work, personal, shopping, health, other"
	}

	return errs
}

// Input normalizes a draft for creation. It returns the validation errors
// when the draft is not valid.
func (d Draft) Input() (models.TaskInput, error) {
	if errs := d.Validate(); len(errs) > 0 {
		return models.TaskInput{}, errs
	}

	in := models.TaskInput{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Priority:    d.priority(),
		Category:    d.category(),
	}
	if strings.TrimSpace(d.DueDate) != "" {
		due, _ := models.ParseDate(d.DueDate)
		in.DueDate = &due
	}
	return in, nil
}

// Patch normalizes a draft into a patch that replaces every editable field.
// An empty due date clears it.
func (d Draft) Patch() (models.TaskPatch, error) {
	in, err := d.Input()
	if err != nil {
		return models.TaskPatch{}, err
	}

	due := models.Date{}
	if in.DueDate != nil {
		due = *in.DueDate
	}
	return models.TaskPatch{
		Title:       &in.Title,
		Description: &in.Description,
		DueDate:     &due,
		Priority:    &in.Priority,
		Category:    &in.Category,
	}, nil
}

func (d Draft) priority() models.Priority {
	if p := strings.TrimSpace(d.Priority); p != "" {
		return models.Priority(p)
	}
	return models.DefaultPriority
}

func (d Draft) category() models.Category {
	if c := strings.TrimSpace(d.Category); c != "" {
		return models.Category(c)
	}
	return models.DefaultCategory
}
