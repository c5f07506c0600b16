package prompt

import (
	"sort"
	"strings"

	"nagrik-mitra-be/pkg/dialogue/lang"
	"nagrik-mitra-be/pkg/dialogue/match"
	"nagrik-mitra-be/pkg/llm"
)

// MaxSchemes bounds how many ranked schemes go into the prompt.
const MaxSchemes = 5

// Build assembles the completion request for the open-ended answer path:
// a system message carrying the top-ranked schemes (condensed), the user's
// profile and a language instruction, followed by the trimmed conversation
// history. The caller is responsible for truncating history beforehand.
func Build(scored []match.ScoredScheme, profile map[string]string, history []llm.Message, language string) []llm.Message {
	if len(scored) > MaxSchemes {
		scored = scored[:MaxSchemes]
	}

	var b strings.Builder
	b.WriteString("You are Nagrik Mitra, an assistant that helps citizens find Indian government welfare schemes and check their eligibility.\n\n")

	if len(scored) > 0 {
		b.WriteString("Here are the most relevant schemes:\n\n")
		for _, sc := range scored {
			s := sc.Scheme
			b.WriteString("Title: ")
			b.WriteString(s.Title)
			b.WriteString("\nDescription: ")
			b.WriteString(s.Description)
			b.WriteString("\nCategory: ")
			b.WriteString(s.Category)
			b.WriteString("\nEligibility: ")
			b.WriteString(s.Eligibility)
			if s.Benefits != "" {
				b.WriteString("\nBenefits: ")
				b.WriteString(s.Benefits)
			}
			b.WriteString("\n\n")
		}
	} else {
		b.WriteString("No schemes matched the query; answer from general knowledge of Indian government schemes and say when you are unsure.\n\n")
	}

	if len(profile) > 0 {
		b.WriteString("Known user profile:\n")
		for _, name := range sortedKeys(profile) {
			b.WriteString("- ")
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(profile[name])
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Answer the user's question using the schemes above and the profile. Be concise and practical. ")
	b.WriteString(lang.Instruction(language))

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: "system", Content: b.String()})
	messages = append(messages, history...)
	return messages
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
