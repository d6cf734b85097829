package models

import (
	"time"
)

// User defines an admin account from the 'users' table
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      RoleType  `json:"role"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash
	Pincode   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
