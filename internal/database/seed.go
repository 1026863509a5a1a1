package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/models"
)

// seedUsers are the unit's default identities, one per role. They are
// provisioned here and never touched by the auth core afterwards.
var seedUsers = []models.User{
	{Email: "admin@hospital.org", DisplayName: "System Admin", Role: models.RoleAdmin},
	{Email: "physician@hospital.org", DisplayName: "Dr. Sarah Chen", Role: models.RolePhysician},
	{Email: "charge@hospital.org", DisplayName: "Maria Lopez, RN", Role: models.RoleChargeNurse},
	{Email: "nurse@hospital.org", DisplayName: "Jane Smith, RN", Role: models.RoleStaffNurse},
	{Email: "clerk@hospital.org", DisplayName: "Alex Morgan", Role: models.RoleAdministrative},
}

// SeedUsers provisions the default identities if the users table is
// empty. The initial password comes from configuration so no credential
// is baked into the binary.
func SeedUsers(ctx context.Context, initialPassword string) error {
	if initialPassword == "" {
		return errors.New("seed password is required for initial provisioning")
	}

	var count int64
	if err := DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(initialPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, u := range seedUsers {
		u.PasswordHash = hash
		u.IsActive = true
		if err := DB.WithContext(ctx).Create(&u).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}
	return nil
}
