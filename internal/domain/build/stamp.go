package build

import (
	"time"

	"github.com/google/uuid"
)

// Stamp identifies one build pass in logs and in the listing index.
type Stamp struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	ContentHash string    `json:"content_hash"`
	Sources     int       `json:"sources"`
	Pages       int       `json:"pages"`
}

func NewStamp(now time.Time) Stamp {
	return Stamp{
		ID:        uuid.NewString(),
		StartedAt: now,
	}
}

func (s Stamp) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
