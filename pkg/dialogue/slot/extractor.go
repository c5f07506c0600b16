package slot

import (
	"regexp"
	"strings"
)

// Rule parses a field value out of free text. Empty second return means the
// message held nothing usable and the caller should re-prompt.
type Rule func(message string) (string, bool)

var (
	// 05/04/2001, 5-4-2001, 2001-04-05
	dateNumericRe = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b|\b\d{4}-\d{1,2}-\d{1,2}\b`)
	// 5th April 2001, 23 March 1998
	dateWordyRe = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+\d{4}\b`)

	// grouped runs first so "12,000" is consumed whole, not as "12"
	incomeRe  = regexp.MustCompile(`\d{1,3}(?:,\d{2,3})+|\d{2,}`)
	phoneRe   = regexp.MustCompile(`\b\d{10}\b`)
	pincodeRe = regexp.MustCompile(`\b\d{6}\b`)
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

// extractDate returns the first date-shaped token verbatim. Values are stored
// as written; nothing downstream assumes ISO-8601.
func extractDate(message string) (string, bool) {
	if m := dateNumericRe.FindString(message); m != "" {
		return m, true
	}
	if m := dateWordyRe.FindString(message); m != "" {
		return m, true
	}
	return "", false
}

// extractIncome matches a run of 2+ digits, either plain or grouped with
// thousand separators (western "12,000" and Indian "1,20,000" grouping),
// and strips the separators. A stray "1,2" is not an amount.
func extractIncome(message string) (string, bool) {
	m := incomeRe.FindString(message)
	if m == "" {
		return "", false
	}
	return strings.ReplaceAll(m, ",", ""), true
}

func extractGender(message string) (string, bool) {
	lower := strings.ToLower(message)
	// "female" contains "male", so check it first
	for _, g := range []string{"female", "male", "other"} {
		if strings.Contains(lower, g) {
			return g, true
		}
	}
	return "", false
}

func extractRuralUrban(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, v := range []string{"rural", "urban"} {
		if strings.Contains(lower, v) {
			return v, true
		}
	}
	return "", false
}

// extractYesNo covers the boolean-ish attributes (bplCard, farmer, ...).
// Word-boundary aware so "nothing" does not read as "no".
func extractYesNo(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		switch tok {
		case "yes", "haan", "han", "ha", "yeah", "yep":
			return "yes", true
		case "no", "nahi", "nahin", "nope":
			return "no", true
		}
	}
	return "", false
}

func regexRule(re *regexp.Regexp) Rule {
	return func(message string) (string, bool) {
		m := re.FindString(message)
		return m, m != ""
	}
}

// rules is the extraction table. Fields absent from it deliberately have no
// deterministic parse and always re-prompt.
var rules = map[string]Rule{
	"dob":          extractDate,
	"familyIncome": extractIncome,
	"gender":       extractGender,
	"ruralUrban":   extractRuralUrban,
	"phone":        regexRule(phoneRe),
	"pincode":      regexRule(pincodeRe),
	"email":        regexRule(emailRe),

	"aadhaarLinked":     extractYesNo,
	"bplCard":           extractYesNo,
	"ewsStatus":         extractYesNo,
	"disability":        extractYesNo,
	"currentlyStudying": extractYesNo,
	"employed":          extractYesNo,
	"unemployedYouth":   extractYesNo,
	"selfEmployed":      extractYesNo,
	"skillCertificate":  extractYesNo,
	"bankLinked":        extractYesNo,
	"farmer":            extractYesNo,
	"landOwnership":     extractYesNo,
	"pregnantMother":    extractYesNo,
	"seniorCitizen":     extractYesNo,
	"minority":          extractYesNo,
}

// HasRule reports whether field has a deterministic extraction rule.
func HasRule(field string) bool {
	_, ok := rules[field]
	return ok
}

// Extract parses a value for field out of message. Pure and deterministic,
// no I/O. Fields without a rule always miss.
func Extract(field, message string) (string, bool) {
	rule, ok := rules[field]
	if !ok {
		return "", false
	}
	return rule(message)
}
