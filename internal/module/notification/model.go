package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type is the severity a notification is rendered with.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
)

// Notification is an informational message owned by its recipient.
// Only Read ever changes after creation.
type Notification struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_notification_user_created,priority:1"`
	Type      Type      `json:"type" gorm:"type:varchar(16);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Link      *string   `json:"link"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_notification_user_created,priority:2,sort:desc"`
}

// TableName returns the database table name.
func (Notification) TableName() string {
	return "notifications"
}
