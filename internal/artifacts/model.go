package artifacts

import "time"

// Outcome values recorded for an artifact's delivery.
const (
	OutcomePending    = "pending"
	OutcomeDownloaded = "downloaded"
	OutcomeShared     = "shared"
	OutcomeCancelled  = "cancelled"
	OutcomeFailed     = "failed"
	OutcomeOpened     = "opened"
)

// Artifact is a produced export file and how it was handed to the user.
type Artifact struct {
	ID           string
	UserID       string
	Kind         string
	Template     string
	FileName     string
	StorageKey   string
	Pages        int
	SizeBytes    int64
	MimeType     string
	DeliveryMode string
	Outcome      string
	CreatedAt    time.Time
}

// ReportableOutcome reports whether a client may report the outcome.
func ReportableOutcome(o string) bool {
	switch o {
	case OutcomeShared, OutcomeCancelled, OutcomeFailed, OutcomeOpened:
		return true
	}
	return false
}
