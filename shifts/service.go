// Package shifts drives the shift lifecycle: posting, applications and the
// assignment handshake between businesses and workers.
package shifts

import (
	"context"
	"fmt"
	"time"

	"flexwage/apperr"
	"flexwage/guard"
	"flexwage/models"
	"flexwage/notify"
	"flexwage/store"
	"flexwage/utils"
)

type Service struct {
	store  *store.Store
	notify *notify.Service // nil disables notification side effects
}

func NewService(st *store.Store, n *notify.Service) *Service {
	return &Service{store: st, notify: n}
}

func appKey(shiftID, workerID string) string {
	return fmt.Sprintf("%s_%s", shiftID, workerID)
}

// Create posts a new shift for the calling business. Ids and timestamps are
// stamped here; an empty status defaults to Open and the applicant list always
// starts empty.
func (s *Service) Create(ctx context.Context, principal string, shift models.Shift) (models.Shift, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.Shift{}, err
	}
	if err := guard.CanCreateShift(user, shift.BusinessID); err != nil {
		return models.Shift{}, err
	}

	shift.ShiftID = "s" + utils.GenerateRandomString(10)
	if shift.Status == "" {
		shift.Status = models.ShiftOpen
	}
	shift.AssignedWorker = ""
	shift.Applicants = []string{}
	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now

	if err := s.store.Shifts.Put(ctx, shift.ShiftID, shift); err != nil {
		return models.Shift{}, err
	}
	return shift, nil
}

func (s *Service) Get(ctx context.Context, shiftID string) (models.Shift, error) {
	shift, err := s.store.Shifts.Get(ctx, shiftID)
	if err != nil {
		return models.Shift{}, fmt.Errorf("shift not found: %w", apperr.ErrNotFound)
	}
	return shift, nil
}

// Update replaces the caller-editable fields of an owned shift. Status,
// assigned worker and applicant list are always carried over from the stored
// copy: assignment state only moves through Apply/Approve/Reject.
func (s *Service) Update(ctx context.Context, principal, shiftID string, updated models.Shift) (models.Shift, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.Shift{}, err
	}
	existing, err := s.store.Shifts.Get(ctx, shiftID)
	if err != nil {
		return models.Shift{}, fmt.Errorf("shift not found: %w", apperr.ErrNotFound)
	}
	if err := guard.CanMutateShift(user, existing); err != nil {
		return models.Shift{}, err
	}

	updated.ShiftID = existing.ShiftID
	updated.BusinessID = existing.BusinessID
	updated.Status = existing.Status
	updated.AssignedWorker = existing.AssignedWorker
	updated.Applicants = existing.Applicants
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.store.Shifts.Put(ctx, shiftID, updated); err != nil {
		return models.Shift{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, principal, shiftID string) error {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return err
	}
	shift, err := s.store.Shifts.Get(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("shift not found: %w", apperr.ErrNotFound)
	}
	if err := guard.CanMutateShift(user, shift); err != nil {
		return err
	}
	return s.store.Shifts.Delete(ctx, shiftID)
}

func (s *Service) ListByBusiness(ctx context.Context, businessID string) ([]models.Shift, error) {
	return s.store.Shifts.Filter(ctx, func(sh models.Shift) bool {
		return sh.BusinessID == businessID
	})
}

// ListOpen returns open shifts, optionally narrowed by a case-insensitive
// location substring.
func (s *Service) ListOpen(ctx context.Context, location string) ([]models.Shift, error) {
	return s.store.Shifts.Filter(ctx, func(sh models.Shift) bool {
		if sh.Status != models.ShiftOpen {
			return false
		}
		return location == "" || utils.ContainsIgnoreCase(sh.Location, location)
	})
}

// Apply records a worker's application: one application record keyed by the
// shift/worker pair plus membership in the shift's applicant list, written
// together under the operation lock.
func (s *Service) Apply(ctx context.Context, principal, shiftID, message string) (models.ShiftApplication, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.ShiftApplication{}, err
	}
	shift, err := s.store.Shifts.Get(ctx, shiftID)
	if err != nil {
		return models.ShiftApplication{}, fmt.Errorf("shift not found: %w", apperr.ErrNotFound)
	}
	if err := guard.CanApply(user, shift); err != nil {
		return models.ShiftApplication{}, err
	}

	app := models.ShiftApplication{
		AppKey:    appKey(shiftID, user.ID),
		ShiftID:   shiftID,
		WorkerID:  user.ID,
		Message:   message,
		Status:    models.ApplicationPending,
		AppliedAt: time.Now(),
	}
	if err := s.store.Applications.Put(ctx, app.AppKey, app); err != nil {
		return models.ShiftApplication{}, err
	}

	shift.Applicants = append(shift.Applicants, user.ID)
	shift.UpdatedAt = time.Now()
	if err := s.store.Shifts.Put(ctx, shiftID, shift); err != nil {
		return models.ShiftApplication{}, err
	}

	if s.notify != nil {
		go s.notify.Push(ctx, shift.BusinessID, models.NotifyShiftClaimed,
			"New application", fmt.Sprintf("%s applied for your %s shift", user.Name, shift.Role), shiftID)
	}
	return app, nil
}

func (s *Service) ListApplications(ctx context.Context, shiftID string) ([]models.ShiftApplication, error) {
	return s.store.Applications.Filter(ctx, func(a models.ShiftApplication) bool {
		return a.ShiftID == shiftID
	})
}

// Approve accepts one application: the application flips to Approved, the
// worker becomes the shift's assignee and the shift moves to Approved.
// Competing applications stay Pending.
func (s *Service) Approve(ctx context.Context, principal, shiftID, workerID string) (models.Shift, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.Shift{}, err
	}
	shift, err := s.store.Shifts.Get(ctx, shiftID)
	if err != nil {
		return models.Shift{}, fmt.Errorf("shift not found: %w", apperr.ErrNotFound)
	}
	app, err := s.store.Applications.Get(ctx, appKey(shiftID, workerID))
	if err != nil {
		return models.Shift{}, fmt.Errorf("application not found: %w", apperr.ErrNotFound)
	}
	if err := guard.CanMutateShift(user, shift); err != nil {
		return models.Shift{}, err
	}

	app.Status = models.ApplicationApproved
	if err := s.store.Applications.Put(ctx, app.AppKey, app); err != nil {
		return models.Shift{}, err
	}

	shift.AssignedWorker = workerID
	shift.Status = models.ShiftApproved
	shift.UpdatedAt = time.Now()
	if err := s.store.Shifts.Put(ctx, shiftID, shift); err != nil {
		return models.Shift{}, err
	}

	if s.notify != nil {
		go s.notify.Push(ctx, workerID, models.NotifyShiftApproved,
			"Application approved", fmt.Sprintf("You were approved for the %s shift on %s", shift.Role, shift.Date), shiftID)
	}
	return shift, nil
}

// Reject declines one application. The shift itself is untouched.
func (s *Service) Reject(ctx context.Context, principal, shiftID, workerID string) error {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return err
	}
	shift, err := s.store.Shifts.Get(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("shift not found: %w", apperr.ErrNotFound)
	}
	app, err := s.store.Applications.Get(ctx, appKey(shiftID, workerID))
	if err != nil {
		return fmt.Errorf("application not found: %w", apperr.ErrNotFound)
	}
	if err := guard.CanMutateShift(user, shift); err != nil {
		return err
	}

	app.Status = models.ApplicationRejected
	if err := s.store.Applications.Put(ctx, app.AppKey, app); err != nil {
		return err
	}

	if s.notify != nil {
		go s.notify.Push(ctx, workerID, models.NotifyShiftRejected,
			"Application update", fmt.Sprintf("Your application for the %s shift was not selected", shift.Role), shiftID)
	}
	return nil
}
