package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/taskswift/internal/models"
	"github.com/adanyl0v/taskswift/internal/query"
	"github.com/adanyl0v/taskswift/internal/services"
)

const (
	noticeTaskAdded   = "Task added successfully!"
	noticeTaskUpdated = "Task updated successfully!"
	noticeTaskDeleted = "Task deleted successfully!"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var errUnknownOutput = errors.New("unknown output format")

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q (use table, json or yaml)", errUnknownOutput, format)
	}
}

// writeValue encodes v as json or yaml.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", errUnknownOutput, format)
	}
}

func writeTasks(w io.Writer, format string, tasks []*models.Task, now time.Time) error {
	if format != outputTable {
		return writeValue(w, format, tasks)
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tCATEGORY\tDUE\tSTATUS")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Priority, t.Category, due, taskStatus(t, now))
	}
	return tw.Flush()
}

func taskStatus(t *models.Task, now time.Time) string {
	switch {
	case t.Completed:
		return "done"
	case t.Overdue(now):
		return "overdue"
	default:
		return "pending"
	}
}

func writeStats(w io.Writer, format string, stats models.Stats) error {
	if format != outputTable {
		return writeValue(w, format, stats)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Completed\t%d\n", stats.Completed)
	fmt.Fprintf(tw, "Pending\t%d\n", stats.Pending)
	fmt.Fprintf(tw, "High priority\t%d\n", stats.HighPriority)
	return tw.Flush()
}

// describeError turns a command error into the notice shown to the user.
func describeError(err error) string {
	var fields query.FieldErrors
	switch {
	case errors.As(err, &fields):
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		b.WriteString("Please fix the errors in the form:")
		for _, name := range names {
			fmt.Fprintf(&b, "\n  %s: %s", name, fields[name])
		}
		return b.String()
	case errors.Is(err, services.ErrTaskNotFound):
		return "Error: " + err.Error() + ", run list to see the current tasks"
	case errors.Is(err, services.ErrPersistence):
		return "Error: " + err.Error() + ", nothing was changed, try again"
	default:
		return "Error: " + err.Error()
	}
}
