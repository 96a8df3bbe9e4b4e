// Package profile manages identity records and the typed worker/business
// profiles layered on top of them.
package profile

import (
	"context"
	"fmt"
	"time"

	"flexwage/apperr"
	"flexwage/guard"
	"flexwage/ledger"
	"flexwage/models"
	"flexwage/store"
	"flexwage/utils"
)

type Service struct {
	store  *store.Store
	ledger *ledger.Service
}

func NewService(st *store.Store, lg *ledger.Service) *Service {
	return &Service{store: st, ledger: lg}
}

// CreateUserProfile registers the caller's identity record. One per principal;
// a second registration is a conflict.
func (s *Service) CreateUserProfile(ctx context.Context, principal string, profile models.UserProfile) (models.UserProfile, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	_, err := s.store.Links.Get(ctx, principal)
	if err := guard.CanCreateIdentity(err == nil); err != nil {
		return models.UserProfile{}, err
	}

	profile.ID = "u" + utils.GenerateRandomString(10)
	profile.OwnerPrincipal = principal
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.store.Users.Put(ctx, principal, profile); err != nil {
		return models.UserProfile{}, err
	}
	link := models.PrincipalLink{Principal: principal, UserID: profile.ID}
	if err := s.store.Links.Put(ctx, principal, link); err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

func (s *Service) GetUserProfile(ctx context.Context, principal string) (models.UserProfile, error) {
	return s.store.ResolveCaller(ctx, principal)
}

// UpdateUserProfile replaces the caller-editable identity fields. Identity id,
// owner and role are immutable after creation.
func (s *Service) UpdateUserProfile(ctx context.Context, principal string, updated models.UserProfile) (models.UserProfile, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	existing, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := guard.CanUpdateIdentity(existing, principal); err != nil {
		return models.UserProfile{}, err
	}

	updated.ID = existing.ID
	updated.OwnerPrincipal = existing.OwnerPrincipal
	updated.UserType = existing.UserType
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.store.Users.Put(ctx, principal, updated); err != nil {
		return models.UserProfile{}, err
	}
	return updated, nil
}

// CreateWorkerProfile adds the worker-typed profile and initializes the
// worker's credential document in the same guarded operation.
func (s *Service) CreateWorkerProfile(ctx context.Context, principal string, wp models.WorkerProfile) (models.WorkerProfile, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.WorkerProfile{}, err
	}
	if err := guard.CanCreateTypedProfile(user, models.UserTypeWorker, wp.UserID); err != nil {
		return models.WorkerProfile{}, err
	}
	if _, err := s.store.Workers.Get(ctx, wp.UserID); err == nil {
		return models.WorkerProfile{}, fmt.Errorf("worker profile already exists: %w", apperr.ErrConflict)
	}

	wp.TotalShiftsCompleted = 0
	wp.AverageRating = nil
	wp.IsVerified = false
	now := time.Now()
	wp.CreatedAt = now
	wp.UpdatedAt = now

	if err := s.store.Workers.Put(ctx, wp.UserID, wp); err != nil {
		return models.WorkerProfile{}, err
	}
	if err := s.ledger.InitCredential(ctx, wp.UserID, wp.Skills); err != nil {
		return models.WorkerProfile{}, err
	}
	return wp, nil
}

func (s *Service) GetWorkerProfile(ctx context.Context, userID string) (models.WorkerProfile, error) {
	wp, err := s.store.Workers.Get(ctx, userID)
	if err != nil {
		return models.WorkerProfile{}, fmt.Errorf("worker profile not found: %w", apperr.ErrNotFound)
	}
	return wp, nil
}

// UpdateWorkerProfile replaces the self-describing fields. The derived fields
// (completed-shift count, cached average, verification flag) belong to the
// ledger and are always carried over from the stored copy.
func (s *Service) UpdateWorkerProfile(ctx context.Context, principal string, wp models.WorkerProfile) (models.WorkerProfile, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.WorkerProfile{}, err
	}
	if err := guard.CanUpdateTypedProfile(user, wp.UserID); err != nil {
		return models.WorkerProfile{}, err
	}
	existing, err := s.store.Workers.Get(ctx, wp.UserID)
	if err != nil {
		return models.WorkerProfile{}, fmt.Errorf("worker profile not found: %w", apperr.ErrNotFound)
	}

	wp.TotalShiftsCompleted = existing.TotalShiftsCompleted
	wp.AverageRating = existing.AverageRating
	wp.IsVerified = existing.IsVerified
	if wp.Photo == "" {
		wp.Photo = existing.Photo
	}
	wp.CreatedAt = existing.CreatedAt
	wp.UpdatedAt = time.Now()

	if err := s.store.Workers.Put(ctx, wp.UserID, wp); err != nil {
		return models.WorkerProfile{}, err
	}
	return wp, nil
}

// SetWorkerPhoto records the stored upload path on the caller's own worker
// profile.
func (s *Service) SetWorkerPhoto(ctx context.Context, principal, path string) (models.WorkerProfile, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.WorkerProfile{}, err
	}
	wp, err := s.store.Workers.Get(ctx, user.ID)
	if err != nil {
		return models.WorkerProfile{}, fmt.Errorf("worker profile not found: %w", apperr.ErrNotFound)
	}

	wp.Photo = path
	wp.UpdatedAt = time.Now()
	if err := s.store.Workers.Put(ctx, user.ID, wp); err != nil {
		return models.WorkerProfile{}, err
	}
	return wp, nil
}

func (s *Service) CreateBusinessProfile(ctx context.Context, principal string, bp models.BusinessProfile) (models.BusinessProfile, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.BusinessProfile{}, err
	}
	if err := guard.CanCreateTypedProfile(user, models.UserTypeBusiness, bp.UserID); err != nil {
		return models.BusinessProfile{}, err
	}
	if _, err := s.store.Businesses.Get(ctx, bp.UserID); err == nil {
		return models.BusinessProfile{}, fmt.Errorf("business profile already exists: %w", apperr.ErrConflict)
	}

	bp.IsVerified = false
	now := time.Now()
	bp.CreatedAt = now
	bp.UpdatedAt = now

	if err := s.store.Businesses.Put(ctx, bp.UserID, bp); err != nil {
		return models.BusinessProfile{}, err
	}
	return bp, nil
}

func (s *Service) GetBusinessProfile(ctx context.Context, userID string) (models.BusinessProfile, error) {
	bp, err := s.store.Businesses.Get(ctx, userID)
	if err != nil {
		return models.BusinessProfile{}, fmt.Errorf("business profile not found: %w", apperr.ErrNotFound)
	}
	return bp, nil
}

func (s *Service) UpdateBusinessProfile(ctx context.Context, principal string, bp models.BusinessProfile) (models.BusinessProfile, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.BusinessProfile{}, err
	}
	if err := guard.CanUpdateTypedProfile(user, bp.UserID); err != nil {
		return models.BusinessProfile{}, err
	}
	existing, err := s.store.Businesses.Get(ctx, bp.UserID)
	if err != nil {
		return models.BusinessProfile{}, fmt.Errorf("business profile not found: %w", apperr.ErrNotFound)
	}

	bp.IsVerified = existing.IsVerified
	bp.CreatedAt = existing.CreatedAt
	bp.UpdatedAt = time.Now()

	if err := s.store.Businesses.Put(ctx, bp.UserID, bp); err != nil {
		return models.BusinessProfile{}, err
	}
	return bp, nil
}
