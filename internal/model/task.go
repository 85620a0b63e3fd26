package model

import "time"

// Task is a line item of an entry. A task with IsRecurring set is a template;
// a task with ParentTaskID set is an instance generated from one.
type Task struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	EntryID           uint               `gorm:"not null;index;index:idx_task_entry_parent,unique" json:"entryId"`
	Content           string             `gorm:"not null" json:"content"`
	Symbol            TaskSymbol         `gorm:"not null;size:16;default:bullet" json:"symbol"`
	Position          int                `gorm:"not null" json:"position"`
	IsRecurring       bool               `gorm:"default:false" json:"isRecurring"`
	RecurrencePattern *RecurrencePattern `gorm:"size:16" json:"recurrencePattern"`
	ParentTaskID      *uint              `gorm:"index:idx_task_entry_parent,unique" json:"parentTaskId"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// TemplateID is the canonical template id used to link generated instances:
// the task's own origin when it has one, its id otherwise.
func (t Task) TemplateID() uint {
	if t.ParentTaskID != nil && *t.ParentTaskID != 0 {
		return *t.ParentTaskID
	}
	return t.ID
}

// Pattern returns the recurrence pattern or "" when none is set.
func (t Task) Pattern() RecurrencePattern {
	if t.RecurrencePattern == nil {
		return ""
	}
	return *t.RecurrencePattern
}

// TaskCompletion records whether a recurring task was completed on a date.
type TaskCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;index:idx_completion_task_date,unique" json:"taskId"`
	Date      string    `gorm:"not null;size:10;index:idx_completion_task_date,unique" json:"date"`
	Completed bool      `gorm:"not null" json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
