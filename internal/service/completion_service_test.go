package service

import (
	"context"
	"errors"
	"testing"
)

func TestCompletionRecordOverwrites(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tmpl := mustCreateTask(t, h.taskService(utcAt(2024, 3, 1, 9)), 1, TaskInput{Date: "2024-03-01", Content: "Floss", Pattern: "daily"})
	svc := NewCompletionService(h.completions, h.tasks)

	first, err := svc.Record(ctx, 1, tmpl.ID, "2024-03-05", true)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	second, err := svc.Record(ctx, 1, tmpl.ID, "2024-03-05", false)
	if err != nil {
		t.Fatalf("record again: %v", err)
	}
	if second.ID != first.ID || second.Completed {
		t.Fatalf("expected the same row overwritten to false, got %+v then %+v", first, second)
	}

	rows, err := svc.List(ctx, 1, tmpl.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Completed {
		t.Fatalf("expected one fact with completed=false, got %+v", rows)
	}
}

func TestCompletionValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tmpl := mustCreateTask(t, h.taskService(utcAt(2024, 3, 1, 9)), 1, TaskInput{Date: "2024-03-01", Content: "Floss", Pattern: "daily"})
	svc := NewCompletionService(h.completions, h.tasks)

	if _, err := svc.Record(ctx, 1, tmpl.ID, "yesterday", true); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad date: expected validation error, got %v", err)
	}
	if _, err := svc.Record(ctx, 1, 0, "2024-03-05", true); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing task: expected validation error, got %v", err)
	}
	if _, err := svc.Record(ctx, 1, 999, "2024-03-05", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown task: expected not found, got %v", err)
	}
	if _, err := svc.Record(ctx, 2, tmpl.ID, "2024-03-05", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign task: expected not found, got %v", err)
	}
	if _, err := svc.ListRange(ctx, 1, tmpl.ID, "2024-03-10", "2024-03-01"); !errors.Is(err, ErrValidation) {
		t.Fatalf("inverted range: expected validation error, got %v", err)
	}

	var verr *ValidationError
	_, err := svc.ListRange(ctx, 1, tmpl.ID, "2024-03-01", "soon")
	if !errors.As(err, &verr) || verr.Field != "endDate" {
		t.Fatalf("expected endDate validation error, got %v", err)
	}
}

func TestCompletionRangeAndDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tmpl := mustCreateTask(t, h.taskService(utcAt(2024, 3, 1, 9)), 1, TaskInput{Date: "2024-03-01", Content: "Floss", Pattern: "daily"})
	svc := NewCompletionService(h.completions, h.tasks)

	for _, d := range []string{"2024-03-05", "2024-03-01", "2024-03-03"} {
		if _, err := svc.Record(ctx, 1, tmpl.ID, d, true); err != nil {
			t.Fatalf("record %s: %v", d, err)
		}
	}

	window, err := svc.ListRange(ctx, 1, tmpl.ID, "2024-03-02", "2024-03-05")
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(window) != 2 || window[0].Date != "2024-03-03" || window[1].Date != "2024-03-05" {
		t.Fatalf("unexpected window %+v", window)
	}

	all, err := svc.List(ctx, 1, tmpl.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Date != "2024-03-05" || all[2].Date != "2024-03-01" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	if err := svc.Delete(ctx, 1, tmpl.ID, "2024-03-03"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, 1, tmpl.ID, "2024-03-03"); err != nil {
		t.Fatalf("deleting a missing fact should be a no-op, got %v", err)
	}
	all, err = svc.List(ctx, 1, tmpl.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 facts after delete, got %d", len(all))
	}
}

func TestCompletionsSharedBetweenInstanceAndTemplate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tasks := h.taskService(utcAt(2024, 3, 1, 9))
	tmpl := mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Stretch", Pattern: "daily"})
	gen := NewOccurrenceService(h.entries, h.tasks)
	first := mustGenerate(t, gen, 1, "2024-03-02").Created[0].ID
	second := mustGenerate(t, gen, 1, "2024-03-03").Created[0].ID
	svc := NewCompletionService(h.completions, h.tasks)

	if _, err := tasks.SetState(ctx, 1, first, "complete"); err != nil {
		t.Fatalf("complete instance: %v", err)
	}
	if err := svc.Delete(ctx, 1, first, "2024-03-02"); err != nil {
		t.Fatalf("delete through instance: %v", err)
	}
	detail, err := tasks.Detail(ctx, 1, first)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Stats.TotalCompletions != 0 {
		t.Fatalf("deleting via the instance id left %d completions", detail.Stats.TotalCompletions)
	}

	row, err := svc.Record(ctx, 1, second, "2024-03-03", true)
	if err != nil {
		t.Fatalf("record through instance: %v", err)
	}
	if row.TaskID != tmpl.ID {
		t.Fatalf("fact stored under task %d, want template %d", row.TaskID, tmpl.ID)
	}
	detail, err = tasks.Detail(ctx, 1, second)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Stats.TotalCompletions != 1 {
		t.Fatalf("recorded fact missing from instance detail: %+v", detail.Stats)
	}

	fromTemplate, err := svc.List(ctx, 1, tmpl.ID)
	if err != nil {
		t.Fatalf("list via template: %v", err)
	}
	fromInstance, err := svc.List(ctx, 1, first)
	if err != nil {
		t.Fatalf("list via instance: %v", err)
	}
	if len(fromTemplate) != 1 || len(fromInstance) != 1 || fromInstance[0].ID != fromTemplate[0].ID {
		t.Fatalf("template and instance see different history: %+v vs %+v", fromTemplate, fromInstance)
	}
}
