package domain

import "time"

// Account is an email/password identity held by the local identity
// provider. Emails are stored lower-cased and are unique.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Email: normalized sign-in address (unique).
//   - PasswordHash: bcrypt hash; never serialized.
//   - LastSignInAt: set on every successful sign-in.
type Account struct {
	ID           string     `json:"id"             gorm:"type:char(36);primaryKey"`
	Email        string     `json:"email"          gorm:"type:varchar(320);not null;uniqueIndex:ux_accounts_email"`
	PasswordHash string     `json:"-"              gorm:"type:varchar(100);not null"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Account.
func (Account) TableName() string { return "accounts" }

// User converts the account into the identity shape exposed to callers.
func (a Account) User() *User {
	return &User{ID: a.ID, Email: a.Email}
}
