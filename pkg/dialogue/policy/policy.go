package policy

import (
	"context"
	"errors"
	"strings"

	"nagrik-mitra-be/internal/constant"
	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/pkg/dialogue/fields"
	"nagrik-mitra-be/pkg/dialogue/lang"
	"nagrik-mitra-be/pkg/dialogue/match"
	"nagrik-mitra-be/pkg/dialogue/prompt"
	"nagrik-mitra-be/pkg/dialogue/slot"
	"nagrik-mitra-be/pkg/llm"

	"github.com/google/uuid"
)

// historyWindow bounds how many trailing messages reach any prompt.
const historyWindow = 5

// SlotFilling is the one pending profile question, echoed between turns by
// the client. At most one is active per conversation.
type SlotFilling struct {
	Field    string
	SchemeId *uuid.UUID
}

// TurnInput is everything the policy sees for one chat turn.
type TurnInput struct {
	Messages    []llm.Message // ordered, latest last
	Profile     map[string]string
	UserId      *uuid.UUID
	SlotFilling *SlotFilling
}

// MatchedScheme is the condensed scheme shape surfaced to the client.
type MatchedScheme struct {
	Name            string
	Category        string
	Description     string
	Eligibility     string
	Benefits        string
	ApplicationLink string
}

// TurnResult is the policy's single decision for the turn. Every code path
// produces a well-formed result; errors never escape Decide.
type TurnResult struct {
	Output            string
	NeedsProfileField string
	SlotFilling       *SlotFilling
	Schemes           []MatchedScheme
	// ProfileMutation echoes what was persisted this turn, nil when nothing was.
	ProfileMutation map[string]string
}

// ProfileStore persists profile field updates. The policy is the only writer.
type ProfileStore interface {
	UpdateProfileFields(ctx context.Context, userId uuid.UUID, fields map[string]string) error
}

// SchemeSource supplies the scheme corpus for a turn.
type SchemeSource interface {
	AllSchemes(ctx context.Context) ([]*entity.Scheme, error)
}

// Matcher ranks schemes against the user's query.
type Matcher interface {
	Match(ctx context.Context, query string, schemes []*entity.Scheme) ([]match.ScoredScheme, error)
}

// IntentClassifier decides whether the message is a profile-update request.
type IntentClassifier interface {
	Classify(ctx context.Context, latestMessage string, history []llm.Message) bool
}

type Policy struct {
	classifier IntentClassifier
	matcher    Matcher
	schemes    SchemeSource
	completion llm.LLMProvider
	store      ProfileStore
}

func NewPolicy(
	classifier IntentClassifier,
	matcher Matcher,
	schemes SchemeSource,
	completion llm.LLMProvider,
	store ProfileStore,
) *Policy {
	return &Policy{
		classifier: classifier,
		matcher:    matcher,
		schemes:    schemes,
		completion: completion,
		store:      store,
	}
}

// Conversation states, re-derived from inputs once per turn.
type turnState interface{ isTurnState() }

type awaitingSlot struct{ slot SlotFilling }
type profileIntent struct{}
type schemeInquiry struct{}

func (awaitingSlot) isTurnState()  {}
func (profileIntent) isTurnState() {}
func (schemeInquiry) isTurnState() {}

// Decide runs one dialogue turn: derive the state, handle it, return the
// single next action. Provider and storage failures degrade to fixed
// messages with the slot state unchanged.
func (p *Policy) Decide(ctx context.Context, in TurnInput) TurnResult {
	// A provider without credentials short-circuits the whole turn before any
	// classifier or embedding call is issued.
	if probe, ok := p.completion.(llm.ConfigProbe); ok && !probe.Configured() {
		return TurnResult{
			Output:      constant.ChatNotConfiguredMessage,
			SlotFilling: in.SlotFilling,
		}
	}

	latest := latestUserMessage(in.Messages)
	if latest == "" {
		return TurnResult{
			Output:      constant.ChatGreetingMessage,
			SlotFilling: in.SlotFilling,
		}
	}

	language := lang.Detect(latest)

	var st turnState = schemeInquiry{}
	if in.SlotFilling != nil && in.SlotFilling.Field != "" {
		st = awaitingSlot{slot: *in.SlotFilling}
	} else if p.classifier.Classify(ctx, latest, trimHistory(in.Messages)) {
		st = profileIntent{}
	}

	switch s := st.(type) {
	case awaitingSlot:
		return p.handleAwaitingSlot(ctx, in, s.slot, latest, language)
	case profileIntent:
		return p.handleProfileIntent(ctx, in, latest, language)
	default:
		return p.handleSchemeInquiry(ctx, in, latest, language)
	}
}

// handleAwaitingSlot runs the extractor against the pending field. A hit
// persists and clears the slot; a miss re-asks the same question with the
// slot untouched.
func (p *Policy) handleAwaitingSlot(ctx context.Context, in TurnInput, pending SlotFilling, latest, language string) TurnResult {
	value, ok := slot.Extract(pending.Field, latest)
	if !ok {
		return TurnResult{
			Output:            lang.ClarifyPrompt(language, pending.Field),
			NeedsProfileField: pending.Field,
			SlotFilling:       &pending,
		}
	}

	mutation := map[string]string{pending.Field: value}
	if in.UserId != nil {
		if err := p.store.UpdateProfileFields(ctx, *in.UserId, mutation); err != nil {
			return TurnResult{
				Output:            constant.ChatApologyMessage,
				NeedsProfileField: pending.Field,
				SlotFilling:       &pending,
			}
		}
	} else {
		mutation = nil
	}

	return TurnResult{
		Output:          lang.Confirmation(language, pending.Field, value),
		SlotFilling:     nil,
		ProfileMutation: mutation,
	}
}

// handleProfileIntent looks for an explicitly mentioned field. Nothing
// mentioned falls through to the scheme-inquiry path rather than re-asking
// about intent with no target.
func (p *Policy) handleProfileIntent(ctx context.Context, in TurnInput, latest, language string) TurnResult {
	mentioned := fields.MentionedIn(latest)
	if len(mentioned) == 0 {
		return p.handleSchemeInquiry(ctx, in, latest, language)
	}

	field := mentioned[0]
	value, ok := slot.Extract(field, latest)
	if !ok {
		return TurnResult{
			Output:            lang.ClarifyPrompt(language, field),
			NeedsProfileField: field,
			SlotFilling:       &SlotFilling{Field: field},
		}
	}

	mutation := map[string]string{field: value}
	if in.UserId != nil {
		if err := p.store.UpdateProfileFields(ctx, *in.UserId, mutation); err != nil {
			return TurnResult{
				Output:      constant.ChatApologyMessage,
				SlotFilling: in.SlotFilling,
			}
		}
	} else {
		mutation = nil
	}

	return TurnResult{
		Output:          lang.Confirmation(language, field, value),
		SlotFilling:     nil,
		ProfileMutation: mutation,
	}
}

// handleSchemeInquiry ranks the corpus, asks for the first missing
// eligibility field of the top scheme, or builds the final answer.
func (p *Policy) handleSchemeInquiry(ctx context.Context, in TurnInput, latest, language string) TurnResult {
	schemes, err := p.schemes.AllSchemes(ctx)
	if err != nil {
		return p.failure(err, in)
	}

	scored, err := p.matcher.Match(ctx, latest, schemes)
	if err != nil {
		return p.failure(err, in)
	}

	if len(scored) > 0 {
		top := scored[0].Scheme
		required := top.EligibilityFields
		if len(required) == 0 {
			required = fields.InferEligibilityFields(top.Eligibility)
		}
		for _, f := range required {
			if in.Profile[f] != "" {
				continue
			}
			schemeId := top.Id
			return TurnResult{
				Output:            lang.ClarifyPrompt(language, f),
				NeedsProfileField: f,
				SlotFilling:       &SlotFilling{Field: f, SchemeId: &schemeId},
			}
		}
	}

	messages := prompt.Build(scored, in.Profile, trimHistory(in.Messages), language)
	answer, err := p.completion.Chat(ctx, messages, llm.WithTemperature(0.7))
	if err != nil {
		return p.failure(err, in)
	}

	return TurnResult{
		Output:      answer,
		SlotFilling: nil,
		Schemes:     condense(scored, latest),
	}
}

func (p *Policy) failure(err error, in TurnInput) TurnResult {
	output := constant.ChatApologyMessage
	if errors.Is(err, llm.ErrNotConfigured) {
		output = constant.ChatNotConfiguredMessage
	}
	return TurnResult{
		Output:      output,
		SlotFilling: in.SlotFilling,
	}
}

var applyKeywords = []string{"apply", "register", "enroll", "enrol", "avail", "aavedan", "आवेदन"}

// isApplyIntent gates application links: withheld unless the user actually
// asked how to apply.
func isApplyIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range applyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func condense(scored []match.ScoredScheme, latest string) []MatchedScheme {
	if len(scored) == 0 {
		return nil
	}
	if len(scored) > prompt.MaxSchemes {
		scored = scored[:prompt.MaxSchemes]
	}
	includeLinks := isApplyIntent(latest)

	out := make([]MatchedScheme, len(scored))
	for i, sc := range scored {
		s := sc.Scheme
		out[i] = MatchedScheme{
			Name:        s.Title,
			Category:    s.Category,
			Description: s.Description,
			Eligibility: s.Eligibility,
			Benefits:    s.Benefits,
		}
		if includeLinks {
			out[i].ApplicationLink = s.Link
		}
	}
	return out
}

func latestUserMessage(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Content
	}
	return ""
}

func trimHistory(messages []llm.Message) []llm.Message {
	if len(messages) <= historyWindow {
		return messages
	}
	return messages[len(messages)-historyWindow:]
}
