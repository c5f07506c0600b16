package fields

import "strings"

// Field describes one profile attribute the assistant can collect: its
// canonical name and the phrases that count as the user mentioning it.
type Field struct {
	Name     string
	Keywords []string
}

// registry is ordered; MentionedIn reports fields in this order so callers
// picking "the first mentioned field" get deterministic behavior.
var registry = []Field{
	{Name: "dob", Keywords: []string{"dob", "date of birth", "birth date", "birthday", "born", "janam", "janm"}},
	{Name: "gender", Keywords: []string{"gender", "male", "female"}},
	{Name: "phone", Keywords: []string{"phone", "mobile", "contact number"}},
	{Name: "aadhaarLinked", Keywords: []string{"aadhaar", "aadhar"}},
	{Name: "address", Keywords: []string{"address", "pata"}},
	{Name: "state", Keywords: []string{"state", "rajya"}},
	{Name: "district", Keywords: []string{"district", "zila", "jila"}},
	{Name: "pincode", Keywords: []string{"pincode", "pin code", "postal code"}},
	{Name: "ruralUrban", Keywords: []string{"rural", "urban", "village", "city area", "gaon", "shehar"}},
	{Name: "casteCategory", Keywords: []string{"caste", "obc", "jati", "sc category", "st category"}},
	{Name: "familyIncome", Keywords: []string{"income", "salary", "earning", "aay", "kamai"}},
	{Name: "bplCard", Keywords: []string{"bpl"}},
	{Name: "rationCardType", Keywords: []string{"ration card", "ration"}},
	{Name: "ewsStatus", Keywords: []string{"ews"}},
	{Name: "disability", Keywords: []string{"disability", "disabled", "divyang", "handicap"}},
	{Name: "disabilityType", Keywords: []string{"disability type", "type of disability"}},
	{Name: "maritalStatus", Keywords: []string{"marital", "married", "unmarried", "widow", "divorced", "shaadi"}},
	{Name: "highestQualification", Keywords: []string{"qualification", "degree", "education level", "padhai"}},
	{Name: "currentlyStudying", Keywords: []string{"studying", "student status"}},
	{Name: "course", Keywords: []string{"course", "stream"}},
	{Name: "studentId", Keywords: []string{"student id", "roll number", "enrollment number"}},
	{Name: "collegeName", Keywords: []string{"college", "university", "school name"}},
	{Name: "employed", Keywords: []string{"employed", "job status", "working", "naukri"}},
	{Name: "profession", Keywords: []string{"profession", "occupation", "job title"}},
	{Name: "unemployedYouth", Keywords: []string{"unemployed"}},
	{Name: "selfEmployed", Keywords: []string{"self employed", "self-employed", "business owner"}},
	{Name: "skillCertificate", Keywords: []string{"skill certificate", "skill training"}},
	{Name: "bankLinked", Keywords: []string{"bank linked", "bank account linked"}},
	{Name: "accountHolder", Keywords: []string{"account holder"}},
	{Name: "bankName", Keywords: []string{"bank name"}},
	{Name: "ifsc", Keywords: []string{"ifsc"}},
	{Name: "upi", Keywords: []string{"upi"}},
	{Name: "farmer", Keywords: []string{"farmer", "farming", "kisan", "kheti"}},
	{Name: "landOwnership", Keywords: []string{"land ownership", "own land", "zameen"}},
	{Name: "landArea", Keywords: []string{"land area", "acres", "hectare", "bigha"}},
	{Name: "pregnantMother", Keywords: []string{"pregnant", "pregnancy", "garbhvati"}},
	{Name: "seniorCitizen", Keywords: []string{"senior citizen", "pension age", "elderly", "budhapa"}},
	{Name: "minority", Keywords: []string{"minority", "alpsankhyak"}},
	{Name: "minorityReligion", Keywords: []string{"minority religion"}},
}

var byName = func() map[string]Field {
	m := make(map[string]Field, len(registry))
	for _, f := range registry {
		m[f.Name] = f
	}
	return m
}()

// All returns the ordered field table.
func All() []Field {
	return registry
}

// Lookup finds a field by canonical name.
func Lookup(name string) (Field, bool) {
	f, ok := byName[name]
	return f, ok
}

// Known reports whether name is a registered profile field.
func Known(name string) bool {
	_, ok := byName[name]
	return ok
}

// MentionedIn lists the fields whose keywords appear in the message, in
// registry order.
func MentionedIn(message string) []string {
	lower := strings.ToLower(message)
	var mentioned []string
	for _, f := range registry {
		for _, kw := range f.Keywords {
			if strings.Contains(lower, kw) {
				mentioned = append(mentioned, f.Name)
				break
			}
		}
	}
	return mentioned
}

// eligibilityCues maps phrases found in scheme eligibility text to the
// profile field needed to assess them.
var eligibilityCues = []struct {
	cue   string
	field string
}{
	{"date of birth", "dob"},
	{"age", "dob"},
	{"income", "familyIncome"},
	{"gender", "gender"},
	{"rural", "ruralUrban"},
	{"urban", "ruralUrban"},
}

// InferEligibilityFields scans free-form eligibility text for cues and
// returns the profile fields it implies, deduplicated, in cue order.
func InferEligibilityFields(eligibilityText string) []string {
	lower := strings.ToLower(eligibilityText)
	seen := make(map[string]bool)
	var inferred []string
	for _, c := range eligibilityCues {
		if strings.Contains(lower, c.cue) && !seen[c.field] {
			seen[c.field] = true
			inferred = append(inferred, c.field)
		}
	}
	return inferred
}
