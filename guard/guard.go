// Package guard holds the authorization rules gating every mutation: pure
// decisions over current entity state plus the caller's resolved identity.
// No side effects; callers act only after a nil return.
package guard

import (
	"fmt"
	"slices"

	"flexwage/apperr"
	"flexwage/models"
)

// CanCreateIdentity allows identity creation only for principals with no
// existing identity record.
func CanCreateIdentity(alreadyRegistered bool) error {
	if alreadyRegistered {
		return fmt.Errorf("user profile already exists: %w", apperr.ErrConflict)
	}
	return nil
}

// CanUpdateIdentity rejects cross-owner identity mutation.
func CanUpdateIdentity(target models.UserProfile, callerPrincipal string) error {
	if target.OwnerPrincipal != callerPrincipal {
		return fmt.Errorf("cannot update another user's profile: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// CanCreateTypedProfile allows worker/business profile creation only when the
// identity's role matches the profile type and the declared owner id matches
// the caller's resolved id.
func CanCreateTypedProfile(user models.UserProfile, want models.UserType, declaredOwner string) error {
	if user.UserType != want {
		return fmt.Errorf("user is not registered as a %s: %w", want, apperr.ErrUnauthorized)
	}
	if declaredOwner != user.ID {
		return fmt.Errorf("user id mismatch: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// CanUpdateTypedProfile rejects mutation of a profile the caller does not own.
func CanUpdateTypedProfile(user models.UserProfile, declaredOwner string) error {
	if declaredOwner != user.ID {
		return fmt.Errorf("cannot update another user's profile: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// CanCreateShift requires a business identity whose id matches the shift's
// declared owner.
func CanCreateShift(user models.UserProfile, declaredBusinessID string) error {
	if user.UserType != models.UserTypeBusiness {
		return fmt.Errorf("only businesses can create shifts: %w", apperr.ErrUnauthorized)
	}
	if declaredBusinessID != user.ID {
		return fmt.Errorf("business id mismatch: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// CanMutateShift allows update/delete/approval only to the owning business.
func CanMutateShift(user models.UserProfile, shift models.Shift) error {
	if shift.BusinessID != user.ID {
		return fmt.Errorf("shift belongs to another business: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// CanApply checks role, shift state and duplicate membership, in that order.
func CanApply(user models.UserProfile, shift models.Shift) error {
	if user.UserType != models.UserTypeWorker {
		return fmt.Errorf("only workers can apply to shifts: %w", apperr.ErrUnauthorized)
	}
	if shift.Status != models.ShiftOpen {
		return fmt.Errorf("shift is not open for applications: %w", apperr.ErrInvalidState)
	}
	if slices.Contains(shift.Applicants, user.ID) {
		return fmt.Errorf("already applied to this shift: %w", apperr.ErrConflict)
	}
	return nil
}

// CanWriteLedger allows history/rating creation only to the business identity
// named in the record. The business id is caller-asserted and checked for
// equality, not re-derived.
func CanWriteLedger(user models.UserProfile, recordBusinessID string) error {
	if user.ID != recordBusinessID {
		return fmt.Errorf("only the named business can write ledger records: %w", apperr.ErrUnauthorized)
	}
	return nil
}
