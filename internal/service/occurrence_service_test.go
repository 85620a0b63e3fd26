package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
)

func TestGenerateIsIdempotent(t *testing.T) {
	h := newHarness(t)
	tasks := h.taskService(utcAt(2024, 3, 1, 9))
	tmpl := mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Morning run", Pattern: "daily"})
	gen := NewOccurrenceService(h.entries, h.tasks)

	first := mustGenerate(t, gen, 1, "2024-03-05")
	if first.CreatedCount != 1 || len(first.Created) != 1 {
		t.Fatalf("expected one instance, got %+v", first)
	}
	if first.Created[0].TemplateID != tmpl.ID || first.Created[0].Pattern != model.PatternDaily {
		t.Fatalf("unexpected created instance %+v", first.Created[0])
	}

	second := mustGenerate(t, gen, 1, "2024-03-05")
	if second.CreatedCount != 0 || second.Skipped != 1 {
		t.Fatalf("second pass should skip, got created=%d skipped=%d", second.CreatedCount, second.Skipped)
	}
	if second.EntryID != first.EntryID {
		t.Fatalf("expected same entry, got %d and %d", first.EntryID, second.EntryID)
	}

	rows, err := h.tasks.ListByEntry(context.Background(), first.EntryID)
	if err != nil {
		t.Fatalf("list entry tasks: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 task in entry, got %d", len(rows))
	}
	inst := rows[0]
	if inst.ParentTaskID == nil || *inst.ParentTaskID != tmpl.ID {
		t.Fatalf("instance must point at template %d, got %v", tmpl.ID, inst.ParentTaskID)
	}
	if inst.IsRecurring || inst.RecurrencePattern != nil || inst.Symbol != model.SymbolBullet {
		t.Fatalf("instance must be a plain bullet, got %+v", inst)
	}
	if inst.Content != "Morning run" {
		t.Fatalf("content not copied: %q", inst.Content)
	}
}

func TestGenerateSkipsTemplateOwnEntry(t *testing.T) {
	h := newHarness(t)
	tasks := h.taskService(utcAt(2024, 3, 1, 9))
	mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Read", Pattern: "daily"})
	gen := NewOccurrenceService(h.entries, h.tasks)

	res := mustGenerate(t, gen, 1, "2024-03-01")
	if res.CreatedCount != 0 || res.Skipped != 1 {
		t.Fatalf("template entry must not get a copy, got %+v", res)
	}
	count, err := h.tasks.CountByEntry(context.Background(), res.EntryID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the template, got %d tasks", count)
	}
}

func TestGenerateFollowsRecurrenceRules(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		anchor  string
		target  string
		want    int
	}{
		{"weekly on cycle", "weekly", "2024-03-01", "2024-03-08", 1},
		{"weekly off cycle", "weekly", "2024-03-01", "2024-03-09", 0},
		{"daily before anchor", "daily", "2024-03-10", "2024-03-09", 0},
		{"monthly skips short month", "monthly", "2024-01-31", "2024-02-29", 0},
		{"monthly on day 31", "monthly", "2024-01-31", "2024-03-31", 1},
		{"yearly leap anchor in common year", "yearly", "2024-02-29", "2025-02-28", 0},
		{"yearly leap anchor in leap year", "yearly", "2024-02-29", "2028-02-29", 1},
	}

	h := newHarness(t)
	tasks := h.taskService(utcAt(2024, 1, 1, 9))
	gen := NewOccurrenceService(h.entries, h.tasks)

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID := uint(i + 1)
			mustCreateTask(t, tasks, userID, TaskInput{Date: tc.anchor, Content: tc.name, Pattern: tc.pattern})
			res := mustGenerate(t, gen, userID, tc.target)
			if res.CreatedCount != tc.want {
				t.Fatalf("created=%d, want %d", res.CreatedCount, tc.want)
			}
		})
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	h := newHarness(t)
	gen := NewOccurrenceService(h.entries, h.tasks)
	ctx := context.Background()

	for _, date := range []string{"", "2024-02-30", "03/05/2024"} {
		if _, err := gen.Generate(ctx, 1, date); !errors.Is(err, ErrValidation) {
			t.Fatalf("date %q: expected validation error, got %v", date, err)
		}
	}
	if _, err := gen.Generate(ctx, 0, "2024-03-05"); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing user: expected validation error, got %v", err)
	}

	var entries int64
	if err := h.db.Model(&model.Entry{}).Where("user_id = ?", 1).Count(&entries).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if entries != 0 {
		t.Fatalf("rejected input must not create entries, got %d", entries)
	}
}

type failingTaskStore struct {
	*repository.TaskRepository
	failParent uint
}

func (s *failingTaskStore) CreateInstance(ctx context.Context, task *model.Task) error {
	if task.ParentTaskID != nil && *task.ParentTaskID == s.failParent {
		return errors.New("disk full")
	}
	return s.TaskRepository.CreateInstance(ctx, task)
}

func TestGenerateContinuesAfterFailure(t *testing.T) {
	h := newHarness(t)
	tasks := h.taskService(utcAt(2024, 3, 1, 9))
	broken := mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Stretch", Pattern: "daily"})
	healthy := mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Water plants", Pattern: "daily"})

	gen := NewOccurrenceService(h.entries, &failingTaskStore{TaskRepository: h.tasks, failParent: broken.ID})
	res := mustGenerate(t, gen, 1, "2024-03-02")

	if res.CreatedCount != 1 || res.Created[0].TemplateID != healthy.ID {
		t.Fatalf("expected the healthy template to be generated, got %+v", res.Created)
	}
	if !res.Partial() || len(res.Failed) != 1 || res.Failed[0].TemplateID != broken.ID {
		t.Fatalf("expected failure for template %d, got %+v", broken.ID, res.Failed)
	}
}

type staleTaskStore struct {
	*repository.TaskRepository
}

func (s *staleTaskStore) ListByEntry(ctx context.Context, entryID uint) ([]model.Task, error) {
	return nil, nil
}

func TestGenerateAbsorbsLostRace(t *testing.T) {
	h := newHarness(t)
	tasks := h.taskService(utcAt(2024, 3, 1, 9))
	mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Journal", Pattern: "daily"})

	first := mustGenerate(t, NewOccurrenceService(h.entries, h.tasks), 1, "2024-03-03")
	if first.CreatedCount != 1 {
		t.Fatalf("expected first pass to create, got %d", first.CreatedCount)
	}

	// A generator that read the entry before the first one wrote to it.
	late := mustGenerate(t, NewOccurrenceService(h.entries, &staleTaskStore{h.tasks}), 1, "2024-03-03")
	if late.CreatedCount != 0 || late.Skipped != 1 || late.Partial() {
		t.Fatalf("conflict must be a silent skip, got %+v", late)
	}

	count, err := h.tasks.CountByEntry(context.Background(), first.EntryID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single instance, got %d", count)
	}
}

func TestGenerateUsesCanonicalTemplate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tasks := h.taskService(utcAt(2024, 3, 1, 9))
	tmpl := mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Walk the dog", Pattern: "daily"})
	gen := NewOccurrenceService(h.entries, h.tasks)

	day2 := mustGenerate(t, gen, 1, "2024-03-02")
	instanceID := day2.Created[0].ID
	if _, err := tasks.SetRecurrence(ctx, 1, instanceID, "daily"); err != nil {
		t.Fatalf("set recurrence on instance: %v", err)
	}

	day3 := mustGenerate(t, gen, 1, "2024-03-03")
	if day3.CreatedCount != 1 || day3.Skipped != 1 {
		t.Fatalf("expected one instance and one skip, got created=%d skipped=%d", day3.CreatedCount, day3.Skipped)
	}
	if day3.Created[0].TemplateID != tmpl.ID {
		t.Fatalf("instance must link to the original template %d, got %d", tmpl.ID, day3.Created[0].TemplateID)
	}
}

func TestGenerateConcurrentCallsCreateOnce(t *testing.T) {
	h := newHarness(t)
	tasks := h.taskService(utcAt(2024, 3, 1, 9))
	mustCreateTask(t, tasks, 1, TaskInput{Date: "2024-03-01", Content: "Meditate", Pattern: "daily"})
	gen := NewOccurrenceService(h.entries, h.tasks)

	const workers = 4
	var wg sync.WaitGroup
	results := make([]*GenerateResult, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = gen.Generate(context.Background(), 1, "2024-03-04")
		}(i)
	}
	wg.Wait()

	created := 0
	var entryID uint
	for i := range results {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		created += results[i].CreatedCount
		entryID = results[i].EntryID
	}
	if created != 1 {
		t.Fatalf("expected exactly one instance across workers, got %d", created)
	}
	count, err := h.tasks.CountByEntry(context.Background(), entryID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 task, got %d", count)
	}
}
