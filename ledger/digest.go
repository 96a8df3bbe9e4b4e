package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"flexwage/models"
)

// VerificationDigest fingerprints a record's canonical string form. Computed
// once when the record is created, stored alongside it, never recomputed.
func VerificationDigest(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func historyCanonical(h models.WorkHistory) string {
	return fmt.Sprintf("history|%s|%s|%s|%s|%s|%s|%.2f|%.2f",
		h.HistoryID, h.WorkerID, h.BusinessID, h.ShiftID, h.Role, h.DateWorked, h.HoursWorked, h.PayEarned)
}

func ratingCanonical(r models.Rating) string {
	return fmt.Sprintf("rating|%s|%s|%s|%s|%d|%s",
		r.RatingID, r.WorkerID, r.BusinessID, r.ShiftID, r.Rating, r.DateWorked)
}
