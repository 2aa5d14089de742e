package analyze

// Wire shapes for the event stream. The delta frame mirrors the upstream
// chat-completion chunk layout so existing SSE clients can reuse their
// parsers.

type usageFrame struct {
	Tokens usageCounts `json:"tokens"`
}

type usageCounts struct {
	Actor  int  `json:"actor"`
	Critic *int `json:"critic,omitempty"`
	Total  *int `json:"total,omitempty"`
}

type deltaFrame struct {
	Choices []deltaChoice `json:"choices"`
}

type deltaChoice struct {
	Delta deltaContent `json:"delta"`
}

type deltaContent struct {
	Content string `json:"content"`
}

type errorFrame struct {
	Error string `json:"error"`
}

func newDeltaFrame(content string) deltaFrame {
	return deltaFrame{Choices: []deltaChoice{{Delta: deltaContent{Content: content}}}}
}

func newFinalUsageFrame(totals UsageTotals) usageFrame {
	critic := totals.CriticTokens
	total := totals.CombinedTokens
	return usageFrame{Tokens: usageCounts{Actor: totals.ActorTokens, Critic: &critic, Total: &total}}
}
