package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexwage/apperr"
	"flexwage/models"
	"flexwage/store"
)

func TestCreateAndList(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	n1, err := svc.Create(ctx, models.Notification{UserID: "u1", Title: "first"})
	require.NoError(t, err)
	assert.NotEmpty(t, n1.NotificationID)
	assert.False(t, n1.IsRead)

	_, err = svc.Create(ctx, models.Notification{UserID: "u2", Title: "other user"})
	require.NoError(t, err)

	list, err := svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Title)
}

func TestMarkRead(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	ctx := context.Background()

	n, err := svc.Create(ctx, models.Notification{UserID: "u1", Title: "unread"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, n.NotificationID))
	stored, err := st.Notifications.Get(ctx, n.NotificationID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)

	assert.ErrorIs(t, svc.MarkRead(ctx, "missing"), apperr.ErrNotFound)
}
