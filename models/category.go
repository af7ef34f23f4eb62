package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is read-mostly reference data grouping menu items.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`
	Title     string    `gorm:"type:varchar(128);not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CreateCategoryRequest is the payload for creating a category (Manager only).
type CreateCategoryRequest struct {
	Slug  string `json:"slug" binding:"required,slug,max=64"`
	Title string `json:"title" binding:"required,min=1,max=128"`
}
