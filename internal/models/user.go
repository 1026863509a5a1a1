package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is one of the fixed clinical/administrative categories.
// Access is pure set-membership per route; there is no numeric hierarchy.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RolePhysician      Role = "Physician"
	RoleChargeNurse    Role = "ChargeNurse"
	RoleStaffNurse     Role = "StaffNurse"
	RoleAdministrative Role = "Administrative"
)

// AllRoles lists every defined role.
var AllRoles = []Role{
	RoleAdmin,
	RolePhysician,
	RoleChargeNurse,
	RoleStaffNurse,
	RoleAdministrative,
}

// ClinicalRoles may write orders, medications and handoff notes.
var ClinicalRoles = []Role{RoleAdmin, RolePhysician, RoleChargeNurse, RoleStaffNurse}

// LeadershipRoles may change unit-level settings.
var LeadershipRoles = []Role{RoleAdmin, RoleChargeNurse}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePhysician, RoleChargeNurse, RoleStaffNurse, RoleAdministrative:
		return true
	}
	return false
}

// In reports whether r is a member of the given set.
func (r Role) In(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// User represents a provisioned staff identity. Identities are seeded
// out-of-band; the auth core never creates, mutates or deletes them.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	DisplayName  string    `gorm:"type:varchar(255);not null" json:"display_name"`
	Role         Role      `gorm:"type:varchar(32);not null" json:"role"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook. Emails are stored lowercased so the unique index
// enforces case-insensitive uniqueness of the login handle.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
