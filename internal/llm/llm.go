package llm

import "context"

// Request is one chat-completion call against the inference provider.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float32
}

// Result is the outcome of a blocking completion call.
type Result struct {
	Content     string
	TotalTokens int
}

// Stream is a lazy, finite, non-restartable sequence of content deltas.
// Recv returns io.EOF once the upstream closes the stream.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Client abstracts the chat-completion provider. Blocking mode returns full
// content plus token usage; streaming mode yields content deltas without
// reliable usage totals.
type Client interface {
	Complete(ctx context.Context, req Request) (Result, error)
	CompleteStream(ctx context.Context, req Request) (Stream, error)
}
