// Package store is the injected persistence boundary: one durable ordered map
// per entity type, so the lifecycle and ledger logic never touches ambient
// database state and can be tested against the in-memory implementation.
package store

import (
	"context"
	"sync"

	"flexwage/models"
)

// Map is a keyed entity map. Get returns apperr.ErrNotFound (wrapped) when the
// key is absent; Filter visits records in store order.
type Map[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Put(ctx context.Context, key string, val T) error
	Delete(ctx context.Context, key string) error
	Filter(ctx context.Context, match func(T) bool) ([]T, error)
}

// Store collects every entity map the services operate on.
type Store struct {
	Accounts      Map[models.Account]       // keyed by username
	Users         Map[models.UserProfile]   // keyed by owner principal
	Links         Map[models.PrincipalLink] // principal -> identity id reverse index
	Workers       Map[models.WorkerProfile] // keyed by identity id
	Businesses    Map[models.BusinessProfile]
	Shifts        Map[models.Shift]
	Applications  Map[models.ShiftApplication] // keyed by "<shiftid>_<workerid>"
	History       Map[models.WorkHistory]
	Ratings       Map[models.Rating]
	Credentials   Map[models.DIDDocument] // keyed by worker id
	Notifications Map[models.Notification]
}

// OpLock serializes multi-record operations. Every service method that reads
// then writes more than one map must hold it for its whole validate-then-write
// sequence, so no two operations ever interleave their store accesses.
var OpLock sync.Mutex
