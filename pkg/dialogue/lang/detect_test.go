package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain english", "What housing schemes are available?", English},
		{"empty", "", English},
		{"devanagari", "मुझे आवास योजनाएं बताइए", Hindi},
		{"single devanagari char wins", "scheme क", Hindi},
		{"hinglish with mixed tokens", "kya hai? 12 lakh income wali scheme, batao!", Hinglish},
		{"one keyword only stays english", "update the record now please", English},
		{"all ascii words stay english", "kya hai this scheme", English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestTemplatesFollowDetectedLanguage(t *testing.T) {
	if got := ClarifyPrompt(Hindi, "dob"); got != clarifyTemplates[Hindi]["dob"] {
		t.Errorf("hindi dob prompt = %q", got)
	}
	if got := ClarifyPrompt(Hindi, "totallyUnknownField"); got == "" {
		t.Error("generic hindi prompt must not be empty")
	}
	if got := Confirmation(English, "dob", "05/04/2001"); got != "Thanks! I've updated your dob to 05/04/2001." {
		t.Errorf("english confirmation = %q", got)
	}
	if Instruction(Hinglish) == Instruction(Hindi) {
		t.Error("language instructions must differ per language")
	}
}
