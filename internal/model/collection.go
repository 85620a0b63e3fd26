package model

import "time"

// Collection groups free-form items under a name (reading list, goals, etc.).
type Collection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;index:idx_user_collection_name,unique" json:"userId"`
	Name        string    `gorm:"index:idx_user_collection_name,unique" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
