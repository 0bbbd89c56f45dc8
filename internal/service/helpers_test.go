package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/pkg/config"
	"nexfolio_backend/pkg/database"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := database.New(config.DatabaseConfig{
		Driver:       "sqlite",
		URL:          "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	require.NoError(t, database.Migrate(db, model.All()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	user := model.User{
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Name:         name,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func strPtr(s string) *string { return &s }

// seedClient creates a user with a client profile and returns the user ID and profile.
func seedClient(t *testing.T, db *gorm.DB, handle string) (uint, *model.Profile) {
	t.Helper()
	userID := seedUser(t, db, handle)
	profile, err := NewProfileService(db).Create(context.Background(), userID, CreateProfileInput{
		Handle: handle,
		Role:   model.RoleClient,
	})
	require.NoError(t, err)
	return userID, profile
}

// seedProvider creates a user with a provider profile and a Provider row.
func seedProvider(t *testing.T, db *gorm.DB, handle string, in SetupProviderInput) (uint, *model.Provider) {
	t.Helper()
	ctx := context.Background()
	userID := seedUser(t, db, handle)
	_, err := NewProfileService(db).Create(ctx, userID, CreateProfileInput{
		Handle: handle,
		Role:   model.RoleProvider,
	})
	require.NoError(t, err)

	if len(in.ServiceTypes) == 0 {
		in.ServiceTypes = []string{"Makeup"}
	}
	provider, err := NewProviderService(db).Setup(ctx, userID, in)
	require.NoError(t, err)
	return userID, provider
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
