package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/adanyl0v/taskswift/internal/models"
)

var t0 = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *models.Date {
	v := models.NewDate(y, m, d)
	return &v
}

func titles(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func fixture() []*models.Task {
	return []*models.Task{
		{ID: "1", Title: "Buy cat food", Description: "the dry kind", Priority: models.PriorityMedium, Category: models.CategoryShopping, CreatedAt: t0},
		{ID: "2", Title: "Walk dog", Priority: models.PriorityHigh, Completed: true, DueDate: date(2025, time.March, 3), CreatedAt: t0.Add(time.Hour)},
		{ID: "3", Title: "Dentist", Description: "Ask about the CAT scan", Priority: models.PriorityHigh, DueDate: date(2025, time.March, 2), CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "4", Title: "Call mom", Priority: models.PriorityLow, CreatedAt: t0.Add(3 * time.Hour)},
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("high-priority")
	require.NoError(t, err)
	assert.Equal(t, FilterHighPriority, f)

	_, err = ParseFilter("overdue")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortDateCreated, k)

	k, err = ParseSortKey("dueDate")
	require.NoError(t, err)
	assert.Equal(t, SortDueDate, k)

	_, err = ParseSortKey("category")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{"all", Params{Filter: FilterAll}, []string{"Call mom", "Dentist", "Walk dog", "Buy cat food"}},
		{"active", Params{Filter: FilterActive}, []string{"Call mom", "Dentist", "Buy cat food"}},
		{"completed", Params{Filter: FilterCompleted}, []string{"Walk dog"}},
		{"high priority", Params{Filter: FilterHighPriority}, []string{"Dentist", "Walk dog"}},
		{"empty filter means all", Params{}, []string{"Call mom", "Dentist", "Walk dog", "Buy cat food"}},
		{"search in title and description", Params{Filter: FilterAll, Search: "  CAT "}, []string{"Dentist", "Buy cat food"}},
		{"search intersects filter", Params{Filter: FilterHighPriority, Search: "cat"}, []string{"Dentist"}},
		{"search with no match", Params{Filter: FilterActive, Search: "groceries"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Apply(fixture(), tt.params)))
		})
	}
}

func TestApplySearchScenario(t *testing.T) {
	tasks := []*models.Task{
		{ID: "1", Title: "Buy cat food"},
		{ID: "2", Title: "Walk dog"},
	}

	got := Apply(tasks, Params{Filter: FilterAll, Search: "cat"})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestApplySortScenario(t *testing.T) {
	tasks := []*models.Task{
		{ID: "a", Title: "A", Priority: models.PriorityLow, CreatedAt: t0},
		{ID: "b", Title: "B", Priority: models.PriorityHigh, CreatedAt: t0.Add(time.Minute)},
	}

	assert.Equal(t, []string{"B", "A"}, titles(Apply(tasks, Params{Sort: SortPriority})))
	assert.Equal(t, []string{"B", "A"}, titles(Apply(tasks, Params{Sort: SortDateCreated})))
	assert.Equal(t, []string{"A", "B"}, titles(Apply(tasks, Params{Sort: SortTitle})))
}

func TestSortDueDatePutsUndatedLast(t *testing.T) {
	orders := [][]*models.Task{
		fixture(),
		reversed(fixture()),
	}
	for _, tasks := range orders {
		got := Apply(tasks, Params{Sort: SortDueDate})
		require.Len(t, got, 4)
		assert.Equal(t, "Dentist", got[0].Title)
		assert.Equal(t, "Walk dog", got[1].Title)
		for _, task := range got[2:] {
			assert.Nil(t, task.DueDate)
		}
	}
}

func TestSortIsStable(t *testing.T) {
	tasks := []*models.Task{
		{ID: "1", Title: "first", Priority: models.PriorityMedium},
		{ID: "2", Title: "second", Priority: models.PriorityMedium},
		{ID: "3", Title: "third", Priority: models.PriorityMedium},
	}

	assert.Equal(t, []string{"first", "second", "third"}, titles(Apply(tasks, Params{Sort: SortPriority})))
	assert.Equal(t, []string{"first", "second", "third"}, titles(Apply(tasks, Params{Sort: SortDueDate})))
}

func TestSortTitleIsLocaleAware(t *testing.T) {
	tasks := []*models.Task{
		{ID: "1", Title: "zebra"},
		{ID: "2", Title: "Éclair"},
		{ID: "3", Title: "apple"},
	}

	// Byte order would put "zebra" before "Éclair".
	assert.Equal(t, []string{"apple", "Éclair", "zebra"}, titles(NewEngine(language.French).Apply(tasks, Params{Sort: SortTitle})))
}

func TestApplyIsPure(t *testing.T) {
	tasks := fixture()
	before := titles(tasks)

	for _, params := range []Params{
		{Filter: FilterAll, Sort: SortTitle},
		{Filter: FilterActive, Sort: SortDueDate, Search: "a"},
		{Filter: FilterHighPriority, Sort: SortPriority},
		{Filter: FilterCompleted, Sort: SortDateCreated},
	} {
		first := Apply(tasks, params)
		second := Apply(tasks, params)
		assert.Equal(t, first, second)
	}
	assert.Equal(t, before, titles(tasks))
}

func TestNewEngineForLanguageFallsBack(t *testing.T) {
	e := NewEngineForLanguage("not a tag!")
	assert.Equal(t, language.English, e.lang)
}

func reversed(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, len(tasks))
	for i, t := range tasks {
		out[len(tasks)-1-i] = t
	}
	return out
}
