package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

func TestGetOrCreateWritesDefaultRecordOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(db.NewUserRepository(db.NewMemoryStore()))

	user, created, err := svc.GetOrCreate(ctx, models.Identity{UID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.UserTypeDefault, user.Type)

	_, created, err = svc.GetOrCreate(ctx, models.Identity{UID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestGetOrCreateErrorKinds(t *testing.T) {
	ctx := context.Background()
	base := db.NewUserRepository(db.NewMemoryStore())

	lookupFails := NewUserService(fakeUserRepo{UserRepository: base,
		GetByIDFunc: func(context.Context, string) (*models.User, error) {
			return nil, errors.New("deadline exceeded")
		},
	})
	_, _, err := lookupFails.GetOrCreate(ctx, models.Identity{UID: "u1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserCreate)

	createFails := NewUserService(fakeUserRepo{UserRepository: base,
		CreateFunc: func(context.Context, *models.User) error {
			return errors.New("permission denied")
		},
	})
	_, _, err = createFails.GetOrCreate(ctx, models.Identity{UID: "u1"})
	assert.ErrorIs(t, err, ErrUserCreate)
	assert.Contains(t, err.Error(), "permission denied")
}
