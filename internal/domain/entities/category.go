package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Category represents a deal category node (tree via ParentID)
type Category struct {
	ID           uuid.UUID   `json:"id"`
	NameEn       string      `json:"nameEn"`
	NameZh       null.String `json:"nameZh,omitempty"`
	Slug         string      `json:"slug"`
	ParentID     *uuid.UUID  `json:"parentId,omitempty"`
	DisplayOrder int         `json:"displayOrder"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
