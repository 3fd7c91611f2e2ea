package jobs

import "time"

const TypeResync = "RESYNC_GEOFENCES"

const (
	StatusPending = "PENDING"
	StatusRunning = "RUNNING"
	StatusDone    = "DONE"
	StatusFailed  = "FAILED"
)

// Job is a queued background task. The only type today is the full
// geofence resync; Reason records which signal requested it.
type Job struct {
	ID uint64 `gorm:"primaryKey"`

	Type   string `gorm:"type:text;not null"`
	Reason string `gorm:"type:text;not null;default:''"`

	RunAt  time.Time `gorm:"index;not null"`
	Status string    `gorm:"index;not null;default:'PENDING'"`

	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:8"`

	LockedBy *string `gorm:"type:text"`
	LockedAt *time.Time

	LastError *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
