package shifts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexwage/apperr"
	"flexwage/models"
	"flexwage/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.NewMemory()
	return NewService(st, nil), st
}

func seedUser(t *testing.T, st *store.Store, principal string, typ models.UserType) models.UserProfile {
	t.Helper()
	u := models.UserProfile{
		ID:             "u-" + principal,
		OwnerPrincipal: principal,
		UserType:       typ,
		Name:           principal,
	}
	ctx := context.Background()
	require.NoError(t, st.Users.Put(ctx, principal, u))
	require.NoError(t, st.Links.Put(ctx, principal, models.PrincipalLink{Principal: principal, UserID: u.ID}))
	return u
}

func seedShift(t *testing.T, svc *Service, businessPrincipal string, biz models.UserProfile) models.Shift {
	t.Helper()
	shift, err := svc.Create(context.Background(), businessPrincipal, models.Shift{
		BusinessID: biz.ID,
		Role:       "barista",
		Date:       "2026-09-05",
		StartTime:  "08:00",
		EndTime:    "14:00",
		PayRate:    18.50,
		Location:   "Shibuya",
	})
	require.NoError(t, err)
	return shift
}

func TestCreateShiftDefaultsToOpen(t *testing.T) {
	svc, st := newTestService(t)
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)

	shift := seedShift(t, svc, "biz", biz)

	assert.Equal(t, models.ShiftOpen, shift.Status)
	assert.Empty(t, shift.AssignedWorker)
	assert.Empty(t, shift.Applicants)
	assert.NotEmpty(t, shift.ShiftID)
}

func TestCreateShiftRejectsWorkers(t *testing.T) {
	svc, st := newTestService(t)
	w := seedUser(t, st, "wrk", models.UserTypeWorker)

	_, err := svc.Create(context.Background(), "wrk", models.Shift{BusinessID: w.ID})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	all, err := st.Shifts.Filter(context.Background(), func(models.Shift) bool { return true })
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateShiftRejectsMismatchedBusinessID(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st, "biz", models.UserTypeBusiness)

	_, err := svc.Create(context.Background(), "biz", models.Shift{BusinessID: "someone-else"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

// Full assignment handshake: post, apply, approve.
func TestApplyAndApproveFlow(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	wrk := seedUser(t, st, "wrk", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)

	app, err := svc.Apply(ctx, "wrk", shift.ShiftID, "I'm available")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, wrk.ID, app.WorkerID)

	stored, err := st.Shifts.Get(ctx, shift.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, []string{wrk.ID}, stored.Applicants)
	assert.Equal(t, models.ShiftOpen, stored.Status)

	approved, err := svc.Approve(ctx, "biz", shift.ShiftID, wrk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftApproved, approved.Status)
	assert.Equal(t, wrk.ID, approved.AssignedWorker)

	gotApp, err := st.Applications.Get(ctx, shift.ShiftID+"_"+wrk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, gotApp.Status)
}

func TestApproveLeavesCompetingApplicationsPending(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	w1 := seedUser(t, st, "w1", models.UserTypeWorker)
	w2 := seedUser(t, st, "w2", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)
	_, err := svc.Apply(ctx, "w1", shift.ShiftID, "")
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "w2", shift.ShiftID, "")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, "biz", shift.ShiftID, w1.ID)
	require.NoError(t, err)

	other, err := st.Applications.Get(ctx, shift.ShiftID+"_"+w2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, other.Status)
}

func TestApplyTwiceIsConflict(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	wrk := seedUser(t, st, "wrk", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)
	_, err := svc.Apply(ctx, "wrk", shift.ShiftID, "")
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "wrk", shift.ShiftID, "")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := st.Shifts.Get(ctx, shift.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, []string{wrk.ID}, stored.Applicants)
}

func TestApplyToNonOpenShiftIsInvalidState(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	w1 := seedUser(t, st, "w1", models.UserTypeWorker)
	seedUser(t, st, "w2", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)
	_, err := svc.Apply(ctx, "w1", shift.ShiftID, "")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, "biz", shift.ShiftID, w1.ID)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "w2", shift.ShiftID, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestApproveWithoutApplicationIsNotFound(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	wrk := seedUser(t, st, "wrk", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)

	_, err := svc.Approve(ctx, "biz", shift.ShiftID, wrk.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// nothing was assigned
	stored, err := st.Shifts.Get(ctx, shift.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftOpen, stored.Status)
	assert.Empty(t, stored.AssignedWorker)
}

func TestApproveByNonOwnerIsUnauthorized(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	seedUser(t, st, "rival", models.UserTypeBusiness)
	wrk := seedUser(t, st, "wrk", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)
	_, err := svc.Apply(ctx, "wrk", shift.ShiftID, "")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, "rival", shift.ShiftID, wrk.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// rejected attempt left everything untouched
	stored, err := st.Shifts.Get(ctx, shift.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftOpen, stored.Status)
	app, err := st.Applications.Get(ctx, shift.ShiftID+"_"+wrk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
}

func TestRejectFlipsOnlyTheApplication(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	wrk := seedUser(t, st, "wrk", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)
	_, err := svc.Apply(ctx, "wrk", shift.ShiftID, "")
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, "biz", shift.ShiftID, wrk.ID))

	app, err := st.Applications.Get(ctx, shift.ShiftID+"_"+wrk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, app.Status)

	stored, err := st.Shifts.Get(ctx, shift.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftOpen, stored.Status)
}

func TestUpdatePreservesAssignmentState(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	wrk := seedUser(t, st, "wrk", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)
	_, err := svc.Apply(ctx, "wrk", shift.ShiftID, "")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, "biz", shift.ShiftID, wrk.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "biz", shift.ShiftID, models.Shift{
		BusinessID: "spoofed",
		Role:       "senior barista",
		PayRate:    22,
		Status:     models.ShiftOpen, // must be ignored
	})
	require.NoError(t, err)

	assert.Equal(t, "senior barista", updated.Role)
	assert.Equal(t, biz.ID, updated.BusinessID)
	assert.Equal(t, models.ShiftApproved, updated.Status)
	assert.Equal(t, wrk.ID, updated.AssignedWorker)
	assert.Equal(t, []string{wrk.ID}, updated.Applicants)
}

func TestUpdateByNonOwnerIsUnauthorized(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	seedUser(t, st, "wrk", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)

	_, err := svc.Update(ctx, "wrk", shift.ShiftID, models.Shift{Role: "hijacked"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	stored, err := st.Shifts.Get(ctx, shift.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, "barista", stored.Role)
}

func TestDeleteShift(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)

	shift := seedShift(t, svc, "biz", biz)
	require.NoError(t, svc.Delete(ctx, "biz", shift.ShiftID))

	_, err := st.Shifts.Get(ctx, shift.ShiftID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "biz", shift.ShiftID), apperr.ErrNotFound)
}

func TestListOpenFiltersByStatusAndLocation(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	wrk := seedUser(t, st, "wrk", models.UserTypeWorker)

	s1 := seedShift(t, svc, "biz", biz) // Shibuya
	s2, err := svc.Create(ctx, "biz", models.Shift{BusinessID: biz.ID, Role: "cook", Location: "Osaka"})
	require.NoError(t, err)

	// close s1 via approval
	_, err = svc.Apply(ctx, "wrk", s1.ShiftID, "")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, "biz", s1.ShiftID, wrk.ID)
	require.NoError(t, err)

	open, err := svc.ListOpen(ctx, "")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, s2.ShiftID, open[0].ShiftID)

	osaka, err := svc.ListOpen(ctx, "osaka")
	require.NoError(t, err)
	assert.Len(t, osaka, 1)

	none, err := svc.ListOpen(ctx, "kyoto")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListApplications(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)
	w1 := seedUser(t, st, "w1", models.UserTypeWorker)
	w2 := seedUser(t, st, "w2", models.UserTypeWorker)

	shift := seedShift(t, svc, "biz", biz)
	_, err := svc.Apply(ctx, "w1", shift.ShiftID, "")
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "w2", shift.ShiftID, "")
	require.NoError(t, err)

	apps, err := svc.ListApplications(ctx, shift.ShiftID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, w1.ID, apps[0].WorkerID)
	assert.Equal(t, w2.ID, apps[1].WorkerID)
}

func TestUnknownCallerIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "ghost", models.Shift{BusinessID: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// A principal with no identity record cannot apply, and the failed attempt
// leaves no trace in the stores.
func TestApplyByUnknownCallerIsNotFound(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)

	shift := seedShift(t, svc, "biz", biz)

	_, err := svc.Apply(ctx, "ghost", shift.ShiftID, "let me in")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	apps, err := st.Applications.Filter(ctx, func(models.ShiftApplication) bool { return true })
	require.NoError(t, err)
	assert.Empty(t, apps)

	stored, err := st.Shifts.Get(ctx, shift.ShiftID)
	require.NoError(t, err)
	assert.Empty(t, stored.Applicants)
}

func TestGetOpenShiftsPagination(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	biz := seedUser(t, st, "biz", models.UserTypeBusiness)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, "biz", models.Shift{
			BusinessID: biz.ID,
			Role:       fmt.Sprintf("role-%d", i),
			Location:   "Shibuya",
		})
		require.NoError(t, err)
	}

	h := NewHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/shifts/open?page=2&limit=1", nil)
	rec := httptest.NewRecorder()
	h.GetOpenShifts(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Shift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "role-1", got[0].Role)

	// a window past the end is an empty page, not an error
	req = httptest.NewRequest(http.MethodGet, "/api/shifts/open?page=9&limit=10", nil)
	rec = httptest.NewRecorder()
	h.GetOpenShifts(rec, req, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got)
}
