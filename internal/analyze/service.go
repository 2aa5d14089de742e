package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vralchenko/ai-jurist/internal/analysislog"
	"github.com/vralchenko/ai-jurist/internal/clientinfo"
	"github.com/vralchenko/ai-jurist/internal/llm"
	"github.com/vralchenko/ai-jurist/internal/prompt"
)

// The actor explores phrasing; the critic enforces precision.
const (
	defaultActorTemperature  = 0.3
	defaultCriticTemperature = 0.1
)

// Emitter receives pipeline events in stage order. A returned error means the
// transport is gone and remaining stages must be abandoned.
type Emitter interface {
	Event(v any) error
	Done() error
}

// DocumentResolver turns URL inputs into document text. Best-effort.
type DocumentResolver interface {
	Resolve(ctx context.Context, input string) string
}

// Service sequences the pipeline stages for one request at a time.
type Service struct {
	LLM      llm.Client
	Resolver DocumentResolver
	Sink     analysislog.Sink
	Provider string
	Model    string

	ActorTemperature  float32
	CriticTemperature float32
}

// Run executes the full pipeline, emitting frames through out. The caller has
// already passed admission control. Any provider error is terminal for the
// request: no retry, no fallback model, no log record.
func (s *Service) Run(ctx context.Context, req Request, out Emitter) error {
	documents := s.resolveDocuments(ctx, req.Documents)

	actorPair := prompt.Actor(req.Language, documents, req.Query)
	actorResult, err := s.LLM.Complete(ctx, llm.Request{
		Model:       s.Model,
		System:      actorPair.System,
		User:        actorPair.User,
		Temperature: s.actorTemperature(),
	})
	if err != nil {
		return fmt.Errorf("actor stage: %w", err)
	}

	// Early cost feedback before any critic content.
	if err := out.Event(usageFrame{Tokens: usageCounts{Actor: actorResult.TotalTokens}}); err != nil {
		return abandoned(err)
	}

	criticPair := prompt.Critic(req.Language, documents, req.Query, actorResult.Content)
	criticReq := llm.Request{
		Model:       s.Model,
		System:      criticPair.System,
		User:        criticPair.User,
		Temperature: s.criticTemperature(),
	}

	stream, err := s.LLM.CompleteStream(ctx, criticReq)
	if err != nil {
		return fmt.Errorf("critic stage: %w", err)
	}
	defer stream.Close()

	// Deltas are forwarded as they arrive; the streamed concatenation is also
	// the canonical text persisted to the log sink.
	var streamed strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("critic stage: %w", err)
		}
		streamed.WriteString(chunk)
		if err := out.Event(newDeltaFrame(chunk)); err != nil {
			return abandoned(err)
		}
	}

	// Streaming responses do not reliably carry usage totals upstream, so a
	// second identical critic call is issued purely for token accounting.
	// Its content is discarded.
	usageResult, err := s.LLM.Complete(ctx, criticReq)
	if err != nil {
		return fmt.Errorf("usage fetch: %w", err)
	}

	totals := UsageTotals{
		ActorTokens:    actorResult.TotalTokens,
		CriticTokens:   usageResult.TotalTokens,
		CombinedTokens: actorResult.TotalTokens + usageResult.TotalTokens,
	}

	s.handOffLog(req, documents, streamed.String(), totals)

	if err := out.Event(newFinalUsageFrame(totals)); err != nil {
		return abandoned(err)
	}
	if err := out.Done(); err != nil {
		return abandoned(err)
	}
	return nil
}

func (s *Service) resolveDocuments(ctx context.Context, inputs []string) []string {
	if s.Resolver == nil {
		return inputs
	}
	resolved := make([]string, len(inputs))
	for i, input := range inputs {
		resolved[i] = s.Resolver.Resolve(ctx, input)
	}
	return resolved
}

// handOffLog hands the record to the sink and moves on; the sink owns the
// write from here and its failure never reaches the caller.
func (s *Service) handOffLog(req Request, documents []string, recommendation string, totals UsageTotals) {
	if s.Sink == nil {
		return
	}
	_ = s.Sink.Insert(context.Background(), analysislog.Record{
		Query:          req.Query,
		Documents:      documents,
		Recommendation: recommendation,
		TokensActor:    totals.ActorTokens,
		TokensCritic:   totals.CriticTokens,
		TokensTotal:    totals.CombinedTokens,
		Provider:       s.Provider,
		Model:          s.Model,
		IP:             req.ClientIP,
		UserAgent:      clientinfo.ParseUserAgent(req.UserAgent),
		SessionID:      req.SessionID,
		Language:       req.Language,
		CreatedAt:      time.Now().UTC(),
	})
}

func (s *Service) actorTemperature() float32 {
	if s.ActorTemperature > 0 {
		return s.ActorTemperature
	}
	return defaultActorTemperature
}

func (s *Service) criticTemperature() float32 {
	if s.CriticTemperature > 0 {
		return s.CriticTemperature
	}
	return defaultCriticTemperature
}

func abandoned(err error) error {
	return fmt.Errorf("%w: %v", ErrClientGone, err)
}
