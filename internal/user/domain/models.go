// Package domain contains persistence models for the user service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/identity"
)

// User belongs to exactly one organization. The role decides what the user
// may do platform-wide; the organization decides what they may see.
type User struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	Username       string        `gorm:"type:text;not null;uniqueIndex:ux_users_username" json:"username"`
	PasswordHash   string        `gorm:"column:password_hash;type:text;not null" json:"-"`
	FirstName      string        `gorm:"type:text" json:"first_name"`
	LastName       string        `gorm:"type:text" json:"last_name"`
	Email          string        `gorm:"type:text" json:"email"`
	Role           identity.Role `gorm:"type:text;not null" json:"role"`
	OrganizationID snowflake.ID  `gorm:"not null;index" json:"organization_id"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
