package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is an append-only to-do entry. The current tool surface has no
// update or delete operation.
type Task struct {
	Id        uuid.UUID
	Text      string
	CreatedAt time.Time
}
