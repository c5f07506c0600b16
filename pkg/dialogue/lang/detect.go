package lang

import "strings"

const (
	English  = "english"
	Hindi    = "hindi"
	Hinglish = "hinglish"
)

// hinglishWords is the fixed romanized-Hindi vocabulary used to tell
// Hinglish apart from plain English.
var hinglishWords = map[string]bool{
	"kya": true, "hai": true, "kaunsa": true, "karna": true, "set": true,
	"kar": true, "sakta": true, "sakti": true, "aap": true, "mera": true,
	"mere": true, "hain": true, "ho": true, "ka": true, "ke": true,
	"ki": true, "tum": true, "profile": true, "update": true,
	"dhanyavaad": true, "poochh": true, "scheme": true, "baare": true,
}

// Detect classifies the message language. Any Devanagari code point makes it
// Hindi. Otherwise the message is Hinglish when at least two tokens come from
// the romanized-Hindi vocabulary and fewer than 70% of the whitespace-split
// tokens are pure ASCII letters. Everything else is English.
func Detect(text string) string {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return Hindi
		}
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return English
	}

	hits := 0
	asciiAlpha := 0
	for _, tok := range tokens {
		if isASCIIAlpha(tok) {
			asciiAlpha++
		}
		if hinglishWords[strings.ToLower(strings.Trim(tok, ".,!?;:\"'()"))] {
			hits++
		}
	}

	if hits >= 2 && float64(asciiAlpha) < 0.7*float64(len(tokens)) {
		return Hinglish
	}
	return English
}

func isASCIIAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || (c > 'Z' && c < 'a') || c > 'z' {
			return false
		}
	}
	return true
}
