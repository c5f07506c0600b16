package intent

import (
	"context"
	"errors"
	"testing"

	"nagrik-mitra-be/pkg/llm"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestClassifyParsesFirstToken(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"plain yes", "yes", true},
		{"uppercase", "YES", true},
		{"yes with punctuation", "Yes, the user wants an update.", true},
		{"no", "No", false},
		{"first token wins", "no yes yes", false},
		{"empty reply", "", false},
		{"garbage", "maybe?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&stubProvider{reply: tt.reply})
			if got := c.Classify(context.Background(), "set my dob", nil); got != tt.want {
				t.Errorf("Classify with reply %q = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestClassifyDefaultsToFalseOnProviderError(t *testing.T) {
	c := NewClassifier(&stubProvider{err: errors.New("timeout")})
	if c.Classify(context.Background(), "update my profile, my dob is 05/04/2001", nil) {
		t.Error("provider errors must classify as false")
	}
}

func TestClassifyMakesSingleCall(t *testing.T) {
	s := &stubProvider{reply: "yes"}
	c := NewClassifier(s)
	c.Classify(context.Background(), "set my income", nil)
	if s.calls != 1 {
		t.Errorf("expected exactly one provider call, got %d", s.calls)
	}
}

func TestKeywordClassify(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"Update my profile", true},
		{"please set my dob to 05/04/2001", true},
		{"mera profile update kar do", true},
		{"What housing schemes are available?", false},
		{"Show me education scholarships", false},
	}

	for _, tt := range tests {
		if got := KeywordClassify(tt.message); got != tt.want {
			t.Errorf("KeywordClassify(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
