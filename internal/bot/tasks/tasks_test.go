package tasks_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/edgard/keeperbot/internal/bot/tasks"
	"github.com/edgard/keeperbot/internal/config"
	"github.com/edgard/keeperbot/internal/filters"
	"github.com/edgard/keeperbot/internal/moderation"
	"github.com/edgard/keeperbot/internal/notes"
)

func newDeps(buf *bytes.Buffer) tasks.TaskDeps {
	return tasks.TaskDeps{
		Logger:  slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Config:  &config.Config{},
		Warns:   moderation.NewWarns(nil),
		Filters: filters.New(nil),
		Notes:   notes.New(nil),
	}
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	registered := tasks.RegisterAllTasks(newDeps(&buf))
	for _, name := range []string{"store_report", "sql_maintenance"} {
		if registered[name] == nil {
			t.Errorf("task %q not registered", name)
		}
	}
}

func TestStoreReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	deps := newDeps(&buf)
	deps.Filters.Set(1, "hello", "hi")
	deps.Notes.Save(1, "rules", "be nice")
	deps.Notes.Save(2, "rules", "be kind")

	if err := tasks.RegisterAllTasks(deps)["store_report"](context.Background()); err != nil {
		t.Fatalf("store_report: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"filters=1", "notes=2", "warns=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestSQLMaintenanceWithoutDatabase(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := tasks.RegisterAllTasks(newDeps(&buf))["sql_maintenance"](context.Background()); err != nil {
		t.Errorf("sql_maintenance: %v", err)
	}
}
