package db

import (
	"context"
	"errors"
	"fmt"

	"coaching-backend/internal/models"
)

type userRepository struct {
	store DocumentStore
}

// NewUserRepository creates a UserRepository on top of a DocumentStore.
func NewUserRepository(store DocumentStore) UserRepository {
	return &userRepository{store: store}
}

// GetByID retrieves a user document by its id (the auth UID).
func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	data, err := r.store.Get(ctx, UsersCollection, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := Decode(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = userID
	return &user, nil
}

// Create writes the full user document, replacing anything stored under the id.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	if err := r.store.Set(ctx, UsersCollection, user.ID, user.ToFirestore()); err != nil {
		return fmt.Errorf("failed to create user with ID '%s': %w", user.ID, err)
	}
	return nil
}

// Merge writes only the given fields of users/{uid}.
func (r *userRepository) Merge(ctx context.Context, userID string, fields map[string]interface{}) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Merge operation")
	}
	if err := r.store.Merge(ctx, UsersCollection, userID, fields); err != nil {
		return fmt.Errorf("failed to update user with ID '%s': %w", userID, err)
	}
	return nil
}

// FindByServices runs an array-contains-any query on the services field.
func (r *userRepository) FindByServices(ctx context.Context, services []string) ([]*models.User, error) {
	var q Query
	if len(services) > 0 {
		q.Filters = []Filter{{Path: "services", Op: OpArrayContainsAny, Value: services}}
	}
	docs, err := r.store.Query(ctx, UsersCollection, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users := make([]*models.User, 0, len(docs))
	for _, doc := range docs {
		var u models.User
		if err := doc.DataTo(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user '%s': %w", doc.ID, err)
		}
		u.ID = doc.ID
		users = append(users, &u)
	}
	return users, nil
}
