// Package analysislog persists one record per completed analysis. Writes are
// best-effort: a sink failure never surfaces to the caller.
package analysislog

import (
	"context"
	"time"

	"github.com/vralchenko/ai-jurist/internal/clientinfo"
)

// Record is written exactly once per completed request and never mutated.
type Record struct {
	Query          string
	Documents      []string
	Recommendation string
	TokensActor    int
	TokensCritic   int
	TokensTotal    int
	Provider       string
	Model          string
	IP             string
	UserAgent      clientinfo.UASummary
	SessionID      string
	Language       string
	CreatedAt      time.Time
}

// Sink accepts analysis records.
type Sink interface {
	Insert(ctx context.Context, rec Record) error
}
