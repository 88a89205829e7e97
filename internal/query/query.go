// Package query derives the visible task sequence from the full collection
// and validates task drafts before they reach the store.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/adanyl0v/taskswift/internal/models"
)

type Filter string

const (
	FilterAll          Filter = "all"
	FilterActive       Filter = "active"
	FilterCompleted    Filter = "completed"
	FilterHighPriority Filter = "high-priority"
)

type SortKey string

const (
	SortDateCreated SortKey = "dateCreated"
	SortDueDate     SortKey = "dueDate"
	SortPriority    SortKey = "priority"
	SortTitle       SortKey = "title"
)

var (
	ErrUnknownFilter  = errors.New("unknown filter")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// ParseFilter maps an empty string to FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.TrimSpace(s)); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted, FilterHighPriority:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// ParseSortKey maps an empty string to SortDateCreated.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case "":
		return SortDateCreated, nil
	case SortDateCreated, SortDueDate, SortPriority, SortTitle:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

type Params struct {
	Filter Filter
	Sort   SortKey
	Search string
}

// Match reports whether t passes both the filter and the search text.
func (p Params) Match(t *models.Task) bool {
	return p.Filter.Match(t) && matchSearch(t, p.Search)
}

func (f Filter) Match(t *models.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHighPriority:
		return t.Priority == models.PriorityHigh
	default:
		return true
	}
}

func matchSearch(t *models.Task, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

// Engine applies filters and sorting. Title comparison uses the collation
// rules of the engine's language.
type Engine struct {
	lang language.Tag
}

func NewEngine(lang language.Tag) *Engine {
	return &Engine{lang: lang}
}

// NewEngineForLanguage falls back to English when tag does not parse.
func NewEngineForLanguage(tag string) *Engine {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.English
	}
	return NewEngine(lang)
}

var defaultEngine = NewEngine(language.English)

// Apply is Engine.Apply with English collation.
func Apply(tasks []*models.Task, params Params) []*models.Task {
	return defaultEngine.Apply(tasks, params)
}

// Apply returns the tasks matching params in display order. The input slice
// is not modified and the result shares task pointers with it.
func (e *Engine) Apply(tasks []*models.Task, params Params) []*models.Task {
	visible := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if params.Match(t) {
			visible = append(visible, t)
		}
	}
	e.Sort(visible, params.Sort)
	return visible
}

// Sort orders tasks in place. Ties keep their relative order.
func (e *Engine) Sort(tasks []*models.Task, key SortKey) {
	var less func(a, b *models.Task) bool
	switch key {
	case SortTitle:
		// Collators are not safe for concurrent use.
		c := collate.New(e.lang)
		less = func(a, b *models.Task) bool {
			return c.CompareString(a.Title, b.Title) < 0
		}
	case SortPriority:
		less = func(a, b *models.Task) bool {
			return a.Priority.Rank() < b.Priority.Rank()
		}
	case SortDueDate:
		less = dueDateLess
	default:
		less = func(a, b *models.Task) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j])
	})
}

func dueDateLess(a, b *models.Task) bool {
	aDated := a.DueDate != nil && !a.DueDate.IsZero()
	bDated := b.DueDate != nil && !b.DueDate.IsZero()
	switch {
	case aDated && bDated:
		return a.DueDate.Before(b.DueDate.Time)
	default:
		return aDated && !bDated
	}
}
