package policy

import (
	"context"
	"errors"
	"testing"

	"nagrik-mitra-be/internal/constant"
	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/pkg/dialogue/lang"
	"nagrik-mitra-be/pkg/dialogue/match"
	"nagrik-mitra-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct{ result bool }

func (s stubClassifier) Classify(ctx context.Context, latest string, history []llm.Message) bool {
	return s.result
}

type stubMatcher struct{ err error }

// Match scores schemes by input order so the first scheme is always on top.
func (s stubMatcher) Match(ctx context.Context, query string, schemes []*entity.Scheme) ([]match.ScoredScheme, error) {
	if s.err != nil {
		return nil, s.err
	}
	scored := make([]match.ScoredScheme, len(schemes))
	for i, sch := range schemes {
		scored[i] = match.ScoredScheme{
			Scheme: sch,
			Vector: []float32{1, 0},
			Score:  1 - float64(i)*0.1,
		}
	}
	return scored, nil
}

type stubSchemes struct {
	schemes []*entity.Scheme
	err     error
}

func (s stubSchemes) AllSchemes(ctx context.Context) ([]*entity.Scheme, error) {
	return s.schemes, s.err
}

type stubCompletion struct {
	reply string
	err   error
	calls int
}

func (s *stubCompletion) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubCompletion) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

type stubStore struct {
	profiles map[uuid.UUID]map[string]string
	err      error
	calls    int
}

func newStubStore() *stubStore {
	return &stubStore{profiles: map[uuid.UUID]map[string]string{}}
}

func (s *stubStore) UpdateProfileFields(ctx context.Context, userId uuid.UUID, fields map[string]string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	p, ok := s.profiles[userId]
	if !ok {
		p = map[string]string{}
		s.profiles[userId] = p
	}
	for k, v := range fields {
		p[k] = v
	}
	return nil
}

func housingScheme(eligibility string) *entity.Scheme {
	return &entity.Scheme{
		Id:          uuid.New(),
		Title:       "PM Awas Yojana",
		Description: "Affordable housing for all",
		Category:    "Housing",
		Eligibility: eligibility,
		Benefits:    "Subsidized housing loan",
		Link:        "https://pmay.example.gov.in/apply",
	}
}

func userTurn(content string) []llm.Message {
	return []llm.Message{{Role: "user", Content: content}}
}

func newTestPolicy(classifier IntentClassifier, schemes []*entity.Scheme, completion llm.LLMProvider, store ProfileStore) *Policy {
	return NewPolicy(classifier, stubMatcher{}, stubSchemes{schemes: schemes}, completion, store)
}

func TestSchemeInquiryWithoutEligibilityCuesAnswersDirectly(t *testing.T) {
	completion := &stubCompletion{reply: "Here are the housing schemes you can look at."}
	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{housingScheme("Open to all citizens.")}, completion, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  map[string]string{},
	})

	assert.Nil(t, res.SlotFilling)
	assert.NotEmpty(t, res.Output)
	assert.Equal(t, completion.reply, res.Output)
	assert.Equal(t, 1, completion.calls)
	require.Len(t, res.Schemes, 1)
	assert.Equal(t, "PM Awas Yojana", res.Schemes[0].Name)
	assert.Empty(t, res.Schemes[0].ApplicationLink, "no apply intent, link withheld")
}

func TestSchemeInquiryWithAgeCueAsksForDob(t *testing.T) {
	scheme := housingScheme("Applicants must be of age 18 to 40.")
	completion := &stubCompletion{reply: "unused"}
	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{scheme}, completion, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  map[string]string{},
	})

	assert.Equal(t, lang.ClarifyPrompt(lang.English, "dob"), res.Output)
	assert.Equal(t, "dob", res.NeedsProfileField)
	require.NotNil(t, res.SlotFilling)
	assert.Equal(t, "dob", res.SlotFilling.Field)
	require.NotNil(t, res.SlotFilling.SchemeId)
	assert.Equal(t, scheme.Id, *res.SlotFilling.SchemeId)
	assert.Equal(t, 0, completion.calls, "no completion call when prompting for a slot")
}

func TestAwaitingSlotPersistsExtractedValue(t *testing.T) {
	store := newStubStore()
	userId := uuid.New()
	schemeId := uuid.New()
	p := newTestPolicy(stubClassifier{}, nil, &stubCompletion{reply: "ok"}, store)

	res := p.Decide(context.Background(), TurnInput{
		Messages:    userTurn("5th April 2001"),
		Profile:     map[string]string{},
		UserId:      &userId,
		SlotFilling: &SlotFilling{Field: "dob", SchemeId: &schemeId},
	})

	assert.Nil(t, res.SlotFilling)
	assert.Contains(t, res.Output, "dob")
	assert.Equal(t, map[string]string{"dob": "5th April 2001"}, res.ProfileMutation)
	assert.Equal(t, "5th April 2001", store.profiles[userId]["dob"])
}

func TestAwaitingSlotRepromptsOnExtractionMiss(t *testing.T) {
	store := newStubStore()
	userId := uuid.New()
	pending := &SlotFilling{Field: "dob"}
	p := newTestPolicy(stubClassifier{}, nil, &stubCompletion{reply: "ok"}, store)

	res := p.Decide(context.Background(), TurnInput{
		Messages:    userTurn("umm I don't remember"),
		Profile:     map[string]string{},
		UserId:      &userId,
		SlotFilling: pending,
	})

	assert.Equal(t, lang.ClarifyPrompt(lang.English, "dob"), res.Output)
	assert.Equal(t, "dob", res.NeedsProfileField)
	require.NotNil(t, res.SlotFilling)
	assert.Equal(t, "dob", res.SlotFilling.Field)
	assert.Equal(t, 0, store.calls)
}

func TestHindiMessageSelectsHindiTemplates(t *testing.T) {
	scheme := housingScheme("Applicants must be of age 18 to 40.")
	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{scheme}, &stubCompletion{reply: "ok"}, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("मुझे आवास योजनाएं बताइए"),
		Profile:  map[string]string{},
	})

	assert.Equal(t, lang.ClarifyPrompt(lang.Hindi, "dob"), res.Output)
}

func TestCompletionFailureReturnsApologyWithSlotUnchanged(t *testing.T) {
	completion := &stubCompletion{err: errors.New("provider exploded")}
	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{housingScheme("Open to all.")}, completion, newStubStore())

	in := TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  map[string]string{},
	}
	res := p.Decide(context.Background(), in)

	assert.Equal(t, constant.ChatApologyMessage, res.Output)
	assert.Equal(t, in.SlotFilling, res.SlotFilling)
	assert.Empty(t, res.Schemes)
}

func TestMissingApiKeyReturnsAdminMessage(t *testing.T) {
	completion := &stubCompletion{err: llm.ErrNotConfigured}
	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{housingScheme("Open to all.")}, completion, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  map[string]string{},
	})

	assert.Equal(t, constant.ChatNotConfiguredMessage, res.Output)
}

type countingClassifier struct{ calls int }

func (c *countingClassifier) Classify(ctx context.Context, latest string, history []llm.Message) bool {
	c.calls++
	return false
}

type countingMatcher struct {
	inner stubMatcher
	calls int
}

func (m *countingMatcher) Match(ctx context.Context, query string, schemes []*entity.Scheme) ([]match.ScoredScheme, error) {
	m.calls++
	return m.inner.Match(ctx, query, schemes)
}

type unconfiguredCompletion struct{ *stubCompletion }

func (unconfiguredCompletion) Configured() bool { return false }

func TestUnconfiguredProviderShortCircuitsBeforeAnyCall(t *testing.T) {
	classifier := &countingClassifier{}
	matcher := &countingMatcher{}
	completion := unconfiguredCompletion{&stubCompletion{err: llm.ErrNotConfigured}}
	scheme := housingScheme("Applicants must be of age 18 to 40.")
	p := NewPolicy(classifier, matcher, stubSchemes{schemes: []*entity.Scheme{scheme}}, completion, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  map[string]string{},
	})

	assert.Equal(t, constant.ChatNotConfiguredMessage, res.Output)
	assert.Empty(t, res.NeedsProfileField, "no clarifying question without a working provider")
	assert.Nil(t, res.SlotFilling)
	assert.Equal(t, 0, classifier.calls)
	assert.Equal(t, 0, matcher.calls)
	assert.Equal(t, 0, completion.calls)
}

func TestUnconfiguredProviderEchoesPendingSlotUnchanged(t *testing.T) {
	completion := unconfiguredCompletion{&stubCompletion{err: llm.ErrNotConfigured}}
	pending := &SlotFilling{Field: "dob"}
	p := newTestPolicy(stubClassifier{}, nil, completion, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages:    userTurn("05/04/2001"),
		Profile:     map[string]string{},
		SlotFilling: pending,
	})

	assert.Equal(t, constant.ChatNotConfiguredMessage, res.Output)
	assert.Equal(t, pending, res.SlotFilling)
}

func TestProfileIntentExtractsAndPersistsMentionedField(t *testing.T) {
	store := newStubStore()
	userId := uuid.New()
	p := newTestPolicy(stubClassifier{result: true}, nil, &stubCompletion{reply: "ok"}, store)

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("set my income to 1,20,000"),
		Profile:  map[string]string{},
		UserId:   &userId,
	})

	assert.Nil(t, res.SlotFilling)
	assert.Contains(t, res.Output, "familyIncome")
	assert.Equal(t, "120000", store.profiles[userId]["familyIncome"])
}

func TestProfileIntentWithoutValueAsksClarifyingQuestion(t *testing.T) {
	p := newTestPolicy(stubClassifier{result: true}, nil, &stubCompletion{reply: "ok"}, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("I want to update my income"),
		Profile:  map[string]string{},
	})

	assert.Equal(t, lang.ClarifyPrompt(lang.English, "familyIncome"), res.Output)
	assert.Equal(t, "familyIncome", res.NeedsProfileField)
	require.NotNil(t, res.SlotFilling)
	assert.Equal(t, "familyIncome", res.SlotFilling.Field)
	assert.Nil(t, res.SlotFilling.SchemeId)
}

func TestProfileIntentWithNoMentionedFieldFallsThroughToInquiry(t *testing.T) {
	completion := &stubCompletion{reply: "general answer"}
	p := newTestPolicy(stubClassifier{result: true}, []*entity.Scheme{housingScheme("Open to all.")}, completion, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("I would like to change something"),
		Profile:  map[string]string{},
	})

	assert.Equal(t, "general answer", res.Output)
	assert.Nil(t, res.SlotFilling)
}

func TestApplyIntentIncludesApplicationLink(t *testing.T) {
	scheme := housingScheme("Open to all.")
	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{scheme}, &stubCompletion{reply: "ok"}, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("How do I apply for housing schemes?"),
		Profile:  map[string]string{},
	})

	require.Len(t, res.Schemes, 1)
	assert.Equal(t, scheme.Link, res.Schemes[0].ApplicationLink)
}

func TestEmptyCorpusSkipsSlotFillingAndAnswers(t *testing.T) {
	completion := &stubCompletion{reply: "I don't have scheme data yet."}
	p := newTestPolicy(stubClassifier{}, nil, completion, newStubStore())

	res := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("What schemes exist?"),
		Profile:  map[string]string{},
	})

	assert.Nil(t, res.SlotFilling)
	assert.Equal(t, completion.reply, res.Output)
	assert.Empty(t, res.Schemes)
}

func TestDecideIsIdempotentWithDeterministicStubs(t *testing.T) {
	scheme := housingScheme("Applicants must be of age 18 to 40.")
	in := TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  map[string]string{},
	}

	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{scheme}, &stubCompletion{reply: "ok"}, newStubStore())
	first := p.Decide(context.Background(), in)
	second := p.Decide(context.Background(), in)

	assert.Equal(t, first, second)
}

func TestSlotValueRoundTripsThroughProfile(t *testing.T) {
	store := newStubStore()
	userId := uuid.New()
	scheme := housingScheme("Applicants must be of age 18 to 40.")
	completion := &stubCompletion{reply: "You are eligible for PM Awas Yojana."}
	p := newTestPolicy(stubClassifier{}, []*entity.Scheme{scheme}, completion, store)

	// turn 1: scheme inquiry discovers the missing dob
	first := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  map[string]string{},
		UserId:   &userId,
	})
	require.NotNil(t, first.SlotFilling)
	require.Equal(t, "dob", first.SlotFilling.Field)

	// turn 2: the user answers, value is persisted
	second := p.Decide(context.Background(), TurnInput{
		Messages:    userTurn("05/04/2001"),
		Profile:     map[string]string{},
		UserId:      &userId,
		SlotFilling: first.SlotFilling,
	})
	assert.Nil(t, second.SlotFilling)
	require.Equal(t, "05/04/2001", store.profiles[userId]["dob"])

	// turn 3: with dob present the same inquiry goes straight to the answer
	third := p.Decide(context.Background(), TurnInput{
		Messages: userTurn("What housing schemes are available?"),
		Profile:  store.profiles[userId],
		UserId:   &userId,
	})
	assert.Nil(t, third.SlotFilling)
	assert.Equal(t, completion.reply, third.Output)
}

func TestAnonymousSlotValueConfirmsWithoutPersisting(t *testing.T) {
	store := newStubStore()
	p := newTestPolicy(stubClassifier{}, nil, &stubCompletion{reply: "ok"}, store)

	res := p.Decide(context.Background(), TurnInput{
		Messages:    userTurn("05/04/2001"),
		Profile:     map[string]string{},
		SlotFilling: &SlotFilling{Field: "dob"},
	})

	assert.Nil(t, res.SlotFilling)
	assert.Nil(t, res.ProfileMutation)
	assert.Equal(t, 0, store.calls)
}

func TestStoreFailureKeepsSlotAndApologizes(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("db down")
	userId := uuid.New()
	pending := &SlotFilling{Field: "dob"}
	p := newTestPolicy(stubClassifier{}, nil, &stubCompletion{reply: "ok"}, store)

	res := p.Decide(context.Background(), TurnInput{
		Messages:    userTurn("05/04/2001"),
		Profile:     map[string]string{},
		UserId:      &userId,
		SlotFilling: pending,
	})

	assert.Equal(t, constant.ChatApologyMessage, res.Output)
	require.NotNil(t, res.SlotFilling)
	assert.Equal(t, "dob", res.SlotFilling.Field)
}
