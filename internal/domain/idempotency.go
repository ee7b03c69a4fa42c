package domain

import "time"

// Idempotency records the response produced for an unsafe request, keyed by
// (user_id, target, key). Target names the resource the request mutated
// (e.g. "conversation" or "deck:<id>:notes"). Replaying the same key returns
// Body with Status instead of applying the mutation twice.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_target_key,priority:1"`
	Target    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_target_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_target_key,priority:3"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	Body      []byte    `gorm:"type:BLOB NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
