package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID      uuid.UUID `json:"id"      gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name"    gorm:"not null"`
	Slug    string    `json:"slug"    gorm:"uniqueIndex;not null"`
	OwnerID uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`

	// free-form workspace preferences persisted as a JSON document
	Settings map[string]any `json:"settings" gorm:"serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
