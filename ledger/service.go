// Package ledger owns the verifiable reputation records: append-only work
// history and ratings, plus the derived credential (DID) document that must
// stay consistent with them after every write.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"flexwage/apperr"
	"flexwage/guard"
	"flexwage/models"
	"flexwage/notify"
	"flexwage/rdx"
	"flexwage/store"
	"flexwage/utils"
)

// ErrInvalidRating rejects scores outside the accepted 1-5 range before any
// write happens.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const didCacheTTL = 2 * time.Hour

type Service struct {
	store  *store.Store
	notify *notify.Service // nil disables notification side effects
}

func NewService(st *store.Store, n *notify.Service) *Service {
	return &Service{store: st, notify: n}
}

func didCacheKey(workerID string) string { return "did:" + workerID }

// InitCredential creates the worker's empty credential document. Called once,
// at worker-profile creation; an existing document is left untouched.
func (s *Service) InitCredential(ctx context.Context, workerID string, skills []string) error {
	if _, err := s.store.Credentials.Get(ctx, workerID); err == nil {
		return nil
	}

	now := time.Now()
	doc := models.DIDDocument{
		WorkerID:       workerID,
		WorkHistory:    []string{},
		Ratings:        []string{},
		TotalShifts:    0,
		SkillsVerified: skills,
		CreatedAt:      now,
		UpdatedAt:      now,
		Signature:      VerificationDigest("did_" + workerID),
	}
	return s.store.Credentials.Put(ctx, workerID, doc)
}

// RecordWorkHistory persists a completed-work entry and folds it into the
// worker's credential document. Entries are immutable once written; a missing
// credential document skips the aggregate step without error.
func (s *Service) RecordWorkHistory(ctx context.Context, principal string, entry models.WorkHistory) (models.WorkHistory, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.WorkHistory{}, err
	}
	if err := guard.CanWriteLedger(user, entry.BusinessID); err != nil {
		return models.WorkHistory{}, err
	}

	if entry.HistoryID == "" {
		entry.HistoryID = utils.GetUUID()
	}
	entry.CompletedAt = time.Now()
	entry.VerificationHash = VerificationDigest(historyCanonical(entry))

	if err := s.store.History.Put(ctx, entry.HistoryID, entry); err != nil {
		return models.WorkHistory{}, err
	}

	if doc, err := s.store.Credentials.Get(ctx, entry.WorkerID); err == nil {
		doc.WorkHistory = append(doc.WorkHistory, entry.HistoryID)
		doc.TotalShifts++
		doc.UpdatedAt = time.Now()
		if err := s.store.Credentials.Put(ctx, entry.WorkerID, doc); err != nil {
			return models.WorkHistory{}, err
		}
		s.invalidateDIDCache(entry.WorkerID)
	}

	if wp, err := s.store.Workers.Get(ctx, entry.WorkerID); err == nil {
		wp.TotalShiftsCompleted++
		wp.UpdatedAt = time.Now()
		if err := s.store.Workers.Put(ctx, entry.WorkerID, wp); err != nil {
			return models.WorkHistory{}, err
		}
	}

	if s.notify != nil {
		go s.notify.Push(ctx, entry.WorkerID, models.NotifyShiftCompleted,
			"Shift completed", fmt.Sprintf("%s verified your completed shift", entry.BusinessName), entry.ShiftID)
	}

	return entry, nil
}

// RecordRating persists a rating and synchronously recomputes the worker's
// average over the full current rating set, writing it to both the worker
// profile cache and the credential document.
func (s *Service) RecordRating(ctx context.Context, principal string, rating models.Rating) (models.Rating, error) {
	store.OpLock.Lock()
	defer store.OpLock.Unlock()

	user, err := s.store.ResolveCaller(ctx, principal)
	if err != nil {
		return models.Rating{}, err
	}
	if err := guard.CanWriteLedger(user, rating.BusinessID); err != nil {
		return models.Rating{}, err
	}
	if rating.Rating < 1 || rating.Rating > 5 {
		return models.Rating{}, ErrInvalidRating
	}

	if rating.RatingID == "" {
		rating.RatingID = utils.GetUUID()
	}
	rating.CreatedAt = time.Now()
	rating.VerificationHash = VerificationDigest(ratingCanonical(rating))

	if err := s.store.Ratings.Put(ctx, rating.RatingID, rating); err != nil {
		return models.Rating{}, err
	}

	// Full rescan by design: the cached average always reflects the true
	// current rating set, whatever it costs.
	all, err := s.store.Ratings.Filter(ctx, func(r models.Rating) bool {
		return r.WorkerID == rating.WorkerID
	})
	if err != nil {
		return models.Rating{}, err
	}
	avg := Average(all)

	if doc, err := s.store.Credentials.Get(ctx, rating.WorkerID); err == nil {
		doc.Ratings = append(doc.Ratings, rating.RatingID)
		doc.AverageRating = avg
		doc.UpdatedAt = time.Now()
		if err := s.store.Credentials.Put(ctx, rating.WorkerID, doc); err != nil {
			return models.Rating{}, err
		}
		s.invalidateDIDCache(rating.WorkerID)
	}

	if wp, err := s.store.Workers.Get(ctx, rating.WorkerID); err == nil {
		wp.AverageRating = avg
		wp.UpdatedAt = time.Now()
		if err := s.store.Workers.Put(ctx, rating.WorkerID, wp); err != nil {
			return models.Rating{}, err
		}
	}

	if s.notify != nil {
		go s.notify.Push(ctx, rating.WorkerID, models.NotifyShiftCompleted,
			"New rating", fmt.Sprintf("%s rated you %d/5", rating.BusinessName, rating.Rating), rating.ShiftID)
	}

	return rating, nil
}

// Average is the unweighted mean of the scores; nil means unrated, which
// callers must not confuse with a zero rating.
func Average(ratings []models.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	var sum int
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(ratings))
	return &avg
}

// ListWorkerHistory returns entries in credential-document append order when
// the document exists; entries recorded before the document was created (or
// for workers without one) follow in store order.
func (s *Service) ListWorkerHistory(ctx context.Context, workerID string) ([]models.WorkHistory, error) {
	all, err := s.store.History.Filter(ctx, func(h models.WorkHistory) bool {
		return h.WorkerID == workerID
	})
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Credentials.Get(ctx, workerID)
	if err != nil {
		return all, nil
	}

	byID := make(map[string]models.WorkHistory, len(all))
	for _, h := range all {
		byID[h.HistoryID] = h
	}

	out := make([]models.WorkHistory, 0, len(all))
	seen := make(map[string]bool, len(doc.WorkHistory))
	for _, id := range doc.WorkHistory {
		if h, ok := byID[id]; ok {
			out = append(out, h)
			seen[id] = true
		}
	}
	for _, h := range all {
		if !seen[h.HistoryID] {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *Service) ListWorkerRatings(ctx context.Context, workerID string) ([]models.Rating, error) {
	return s.store.Ratings.Filter(ctx, func(r models.Rating) bool {
		return r.WorkerID == workerID
	})
}

// GetCredential fetches the worker's credential document, read-through cached
// in Redis. Export shares this exact contract; the exported copy carries no
// extra signing.
func (s *Service) GetCredential(ctx context.Context, workerID string) (models.DIDDocument, error) {
	if cached, err := rdx.RdxGet(didCacheKey(workerID)); err == nil && cached != "" {
		var doc models.DIDDocument
		if err := json.Unmarshal([]byte(cached), &doc); err == nil {
			return doc, nil
		}
	}

	doc, err := s.store.Credentials.Get(ctx, workerID)
	if err != nil {
		return models.DIDDocument{}, fmt.Errorf("DID document not found: %w", apperr.ErrNotFound)
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := rdx.RdxSetWithTTL(didCacheKey(workerID), string(data), didCacheTTL); err != nil {
			log.Printf("ledger: DID cache write failed for %s: %v", workerID, err)
		}
	}
	return doc, nil
}

func (s *Service) invalidateDIDCache(workerID string) {
	if _, err := rdx.RdxDel(didCacheKey(workerID)); err != nil {
		log.Printf("ledger: DID cache invalidation failed for %s: %v", workerID, err)
	}
}
