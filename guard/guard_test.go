package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flexwage/apperr"
	"flexwage/models"
)

func worker(id string) models.UserProfile {
	return models.UserProfile{ID: id, OwnerPrincipal: "p-" + id, UserType: models.UserTypeWorker}
}

func business(id string) models.UserProfile {
	return models.UserProfile{ID: id, OwnerPrincipal: "p-" + id, UserType: models.UserTypeBusiness}
}

func TestCanCreateIdentity(t *testing.T) {
	assert.NoError(t, CanCreateIdentity(false))
	assert.ErrorIs(t, CanCreateIdentity(true), apperr.ErrConflict)
}

func TestCanUpdateIdentity(t *testing.T) {
	u := worker("w1")
	assert.NoError(t, CanUpdateIdentity(u, "p-w1"))
	assert.ErrorIs(t, CanUpdateIdentity(u, "p-other"), apperr.ErrUnauthorized)
}

func TestCanCreateTypedProfile(t *testing.T) {
	w := worker("w1")

	assert.NoError(t, CanCreateTypedProfile(w, models.UserTypeWorker, "w1"))
	assert.ErrorIs(t, CanCreateTypedProfile(w, models.UserTypeBusiness, "w1"), apperr.ErrUnauthorized)
	assert.ErrorIs(t, CanCreateTypedProfile(w, models.UserTypeWorker, "someone-else"), apperr.ErrUnauthorized)
}

func TestCanCreateShift(t *testing.T) {
	assert.NoError(t, CanCreateShift(business("b1"), "b1"))
	assert.ErrorIs(t, CanCreateShift(worker("w1"), "w1"), apperr.ErrUnauthorized)
	assert.ErrorIs(t, CanCreateShift(business("b1"), "b2"), apperr.ErrUnauthorized)
}

func TestCanMutateShift(t *testing.T) {
	shift := models.Shift{ShiftID: "s1", BusinessID: "b1"}

	assert.NoError(t, CanMutateShift(business("b1"), shift))
	assert.ErrorIs(t, CanMutateShift(business("b2"), shift), apperr.ErrUnauthorized)
}

func TestCanApply(t *testing.T) {
	open := models.Shift{ShiftID: "s1", BusinessID: "b1", Status: models.ShiftOpen}

	assert.NoError(t, CanApply(worker("w1"), open))
	assert.ErrorIs(t, CanApply(business("b1"), open), apperr.ErrUnauthorized)

	closed := open
	closed.Status = models.ShiftApproved
	assert.ErrorIs(t, CanApply(worker("w1"), closed), apperr.ErrInvalidState)

	applied := open
	applied.Applicants = []string{"w1"}
	assert.ErrorIs(t, CanApply(worker("w1"), applied), apperr.ErrConflict)
}

func TestCanWriteLedger(t *testing.T) {
	assert.NoError(t, CanWriteLedger(business("b1"), "b1"))
	assert.ErrorIs(t, CanWriteLedger(business("b1"), "b2"), apperr.ErrUnauthorized)
	assert.ErrorIs(t, CanWriteLedger(worker("w1"), "b1"), apperr.ErrUnauthorized)
}
