package model

import "time"

// User represents a vault principal. Users are created at registration
// and never deleted; only an admin may change a role afterwards.
type User struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         Role      `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
