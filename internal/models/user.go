package models

import (
	"slices"
	"time"
)

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(180);uniqueIndex:email_idx;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Nickname     string    `gorm:"type:varchar(64);not null" json:"nickname"`
	Roles        []Role    `gorm:"type:text;serializer:json;not null" json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GetRoles returns the stored roles plus the implicit ROLE_USER, without duplicates.
func (u *User) GetRoles() []Role {
	roles := make([]Role, 0, len(u.Roles)+1)
	for _, r := range u.Roles {
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.GetRoles(), role)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
