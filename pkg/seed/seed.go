package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/internal/service"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "nexfolio-demo"

type demoAccount struct {
	email    string
	name     string
	handle   string
	role     model.Role
	bio      string
	location string
	provider *service.SetupProviderInput
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

var demoAccounts = []demoAccount{
	{
		email:    "ana@demo.nexfolio.app",
		name:     "Ana Ruiz",
		handle:   "glam_by_ana",
		role:     model.RoleProvider,
		bio:      "Bridal and editorial makeup artist.",
		location: "Austin, TX",
		provider: &service.SetupProviderInput{
			Profession:   strPtr("Makeup Artist"),
			ServiceTypes: []string{"Bridal Makeup", "Editorial", "Lessons"},
			Pricing:      map[string]float64{"trial": 45, "full": 150},
			TravelRadius: floatPtr(25),
			SocialLinks:  map[string]string{"instagram": "@glam_by_ana"},
			Availability: json.RawMessage(`{"sat":["09:00-17:00"],"sun":["10:00-14:00"]}`),
		},
	},
	{
		email:    "marcus@demo.nexfolio.app",
		name:     "Marcus Lee",
		handle:   "volt_electric",
		role:     model.RoleProvider,
		bio:      "Licensed residential electrician.",
		location: "Dallas, TX",
		provider: &service.SetupProviderInput{
			Profession:   strPtr("Electrician"),
			ServiceTypes: []string{"Wiring", "Lighting", "Panel Upgrades"},
			Pricing:      map[string]float64{"hourly": 85},
			TravelRadius: floatPtr(40),
		},
	},
	{
		email:    "jules@demo.nexfolio.app",
		name:     "Jules Carter",
		handle:   "jules_books",
		role:     model.RoleClient,
		location: "Austin, TX",
	},
}

// Demo creates the demo accounts. Accounts whose email already exists are
// left untouched, so it is safe to run on every start.
func Demo(ctx context.Context, db *gorm.DB, auth *service.AuthService) error {
	profiles := service.NewProfileService(db)
	providers := service.NewProviderService(db)

	created := 0
	for _, acc := range demoAccounts {
		var count int64
		if err := db.WithContext(ctx).Model(&model.User{}).Where("email = ?", acc.email).Count(&count).Error; err != nil {
			return fmt.Errorf("check demo user %s: %w", acc.email, err)
		}
		if count > 0 {
			continue
		}

		user, _, err := auth.Register(ctx, service.RegisterInput{
			Email:    acc.email,
			Password: DemoPassword,
			Name:     acc.name,
		})
		if err != nil {
			return fmt.Errorf("register demo user %s: %w", acc.email, err)
		}

		in := service.CreateProfileInput{Handle: acc.handle, Role: acc.role}
		if acc.bio != "" {
			in.Bio = strPtr(acc.bio)
		}
		if acc.location != "" {
			in.Location = strPtr(acc.location)
		}
		if _, err := profiles.Create(ctx, user.ID, in); err != nil {
			return fmt.Errorf("create demo profile %s: %w", acc.handle, err)
		}

		if acc.provider != nil {
			if _, err := providers.Setup(ctx, user.ID, *acc.provider); err != nil {
				return fmt.Errorf("setup demo provider %s: %w", acc.handle, err)
			}
		}
		created++
	}

	log.Printf("Demo data seeded (%d new accounts)", created)
	return nil
}
