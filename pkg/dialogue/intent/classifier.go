package intent

import (
	"context"
	"strings"

	"nagrik-mitra-be/pkg/llm"
)

// Classifier decides whether a message is a profile-update request. With a
// provider it asks the model a yes/no question; without one it falls back to
// phrase matching.
type Classifier struct {
	provider llm.LLMProvider
}

func NewClassifier(provider llm.LLMProvider) *Classifier {
	return &Classifier{provider: provider}
}

// updatePhrases trigger the keyword fallback. First-person statement shapes
// only; questions about schemes must not match.
var updatePhrases = []string{
	"update my profile",
	"update my ",
	"set my ",
	"change my ",
	"my profile",
	"mera profile update",
	"profile update karna",
	"profile mein set",
}

// KeywordClassify is the model-free alternative used when no provider is
// wired, and directly testable.
func KeywordClassify(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range updatePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Classify returns true when the user is trying to update their profile.
// One provider call per turn, no retries. Provider errors default to false:
// under-triggering slot prompts beats looping the user through unwanted
// questions.
func (c *Classifier) Classify(ctx context.Context, latestMessage string, history []llm.Message) bool {
	if c.provider == nil {
		return KeywordClassify(latestMessage)
	}

	var b strings.Builder
	b.WriteString("You are an intent classifier. Answer with a single word, yes or no.\n")
	b.WriteString("Is the user trying to update their profile information (for example their date of birth, income, gender or address)?\n")
	if len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, m := range history {
			b.WriteString(m.Role)
			b.WriteString(": ")
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
	}
	b.WriteString("User message: ")
	b.WriteString(latestMessage)

	reply, err := c.provider.Generate(ctx, b.String(), llm.WithTemperature(0))
	if err != nil {
		return false
	}

	tokens := strings.Fields(reply)
	if len(tokens) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(tokens[0]), "yes")
}
