package thread

import (
	"time"

	"github.com/google/uuid"
)

// Thread is a college hub that projects are posted in.
// Threads are managed by the community service; this module only reads them.
type Thread struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Thread) TableName() string {
	return "threads"
}

// Member records that a user joined a thread.
type Member struct {
	ThreadID uuid.UUID `json:"thread_id" gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;index"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}

// TableName returns the database table name.
func (Member) TableName() string {
	return "thread_members"
}
