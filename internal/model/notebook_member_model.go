package model

import (
	"time"

	"github.com/google/uuid"
)

// NotebookMember grants a user access to a shared notebook. Its identity is
// the (NotebookId, UserId) pair.
type NotebookMember struct {
	NotebookId uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role       string    `gorm:"type:varchar(20);not null;default:'viewer'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (NotebookMember) TableName() string {
	return "notebook_members"
}
