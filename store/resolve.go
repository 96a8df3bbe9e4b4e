package store

import (
	"context"
	"fmt"

	"flexwage/apperr"
	"flexwage/models"
)

// ResolveCaller maps an authenticated principal to the identity record it
// owns. Every authorization decision starts here.
func (s *Store) ResolveCaller(ctx context.Context, principal string) (models.UserProfile, error) {
	user, err := s.Users.Get(ctx, principal)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("user profile not found: %w", apperr.ErrNotFound)
	}
	return user, nil
}
