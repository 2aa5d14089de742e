// Package analyze runs the two-stage actor/critic pipeline: a blocking
// drafting call, a streamed refinement call relayed delta-by-delta to the
// caller, a usage-accounting call, and a fire-and-forget log write.
package analyze

import "errors"

// Request carries one analysis submission. It is owned by the handling
// request's lifetime and never mutated.
type Request struct {
	Query     string
	Documents []string
	Language  string
	SessionID string
	ClientIP  string
	UserAgent string
}

// UsageTotals tracks token spend across both stages.
type UsageTotals struct {
	ActorTokens    int
	CriticTokens   int
	CombinedTokens int
}

// ErrClientGone marks a transport write failure: the caller disconnected
// mid-stream and the remaining stages were abandoned.
var ErrClientGone = errors.New("client disconnected")
