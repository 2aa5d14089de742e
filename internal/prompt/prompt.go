// Package prompt renders the (system, user) message pairs for the actor and
// critic stages. Rendering is pure: same inputs, same pair.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"
)

var (
	//go:embed templates/actor_system.txt
	actorSystemTmpl string
	//go:embed templates/actor_user.txt
	actorUserTmpl string
	//go:embed templates/critic_system.txt
	criticSystemTmpl string
	//go:embed templates/critic_user.txt
	criticUserTmpl string
	//go:embed templates/cleanup_system.txt
	cleanupSystemTmpl string
)

// emptyDocumentsMarker is rendered in place of document text so the model
// cannot silently assume no constraint exists.
const emptyDocumentsMarker = "[NO DOCUMENTS ATTACHED]"

const documentSeparator = "\n\n---\n\n"

// Pair is a rendered (system, user) prompt pair for one stage.
type Pair struct {
	System string
	User   string
}

// Actor renders the prompts for the drafting stage.
func Actor(language string, documents []string, query string) Pair {
	lang := languageName(language)
	return Pair{
		System: fmt.Sprintf(actorSystemTmpl, lang),
		User:   fmt.Sprintf(actorUserTmpl, query, documentsBlock(documents), lang),
	}
}

// Critic renders the prompts for the refinement stage. The critic sees only
// text: the original documents, the query and the actor's draft.
func Critic(language string, documents []string, query, draft string) Pair {
	return Pair{
		System: fmt.Sprintf(criticSystemTmpl, languageName(language)),
		User:   fmt.Sprintf(criticUserTmpl, documentsBlock(documents), query, draft),
	}
}

// CleanupSystem returns the system prompt for extracted-text spacing repair.
func CleanupSystem() string {
	return cleanupSystemTmpl
}

func documentsBlock(documents []string) string {
	var nonEmpty []string
	for _, d := range documents {
		if trimmed := strings.TrimSpace(d); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	if len(nonEmpty) == 0 {
		return emptyDocumentsMarker
	}
	return strings.Join(nonEmpty, documentSeparator)
}

func languageName(code string) string {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "uk":
		return "Ukrainian (UA)"
	default:
		return "Russian (RU)"
	}
}
