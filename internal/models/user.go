package models

import "time"

// User is an administrative credential record. There is no self-registration
// flow; rows are provisioned out-of-band with the admin CLI. Password always
// holds a bcrypt hash - plaintext comparison is not supported anywhere.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
