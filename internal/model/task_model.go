package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
