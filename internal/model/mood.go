package model

import "time"

// MoodEntry is one mood logged by a user; a date may hold several.
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_mood_user_date" json:"userId"`
	Date      string    `gorm:"not null;size:10;index:idx_mood_user_date" json:"date"`
	Time      string    `gorm:"size:5" json:"time"`
	Mood      MoodType  `gorm:"not null;size:16" json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
