package model

import "time"

// Entry is a journal page owned by a user for one (date, type) pair.
type Entry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_entry_user_date_type,unique"`
	Date      string    `gorm:"not null;size:10;index:idx_entry_user_date_type,unique"`
	Type      EntryType `gorm:"not null;size:16;index:idx_entry_user_date_type,unique"`
	Title     string
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
}
