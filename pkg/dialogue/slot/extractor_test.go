package slot

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		message string
		want    string
		ok      bool
	}{
		{"dob slash", "dob", "my dob is 05/04/2001", "05/04/2001", true},
		{"dob iso", "dob", "born on 2001-04-05", "2001-04-05", true},
		{"dob wordy", "dob", "5th April 2001", "5th April 2001", true},
		{"dob verbatim no normalization", "dob", "it is 5/4/2001 ok", "5/4/2001", true},
		{"dob miss", "dob", "sometime in spring", "", false},

		{"income with separators", "familyIncome", "around 1,20,000 per year", "120000", true},
		{"income western grouping", "familyIncome", "it is 12,000 monthly", "12000", true},
		{"income plain", "familyIncome", "income is 50000", "50000", true},
		{"income single digit miss", "familyIncome", "I earn 5", "", false},
		{"income stray comma pair miss", "familyIncome", "between 1,2 options", "", false},

		{"gender female before male", "gender", "I am female", "female", true},
		{"gender male", "gender", "Male here", "male", true},
		{"gender miss", "gender", "prefer not to say anything", "", false},

		{"rural", "ruralUrban", "I live in a rural village", "rural", true},
		{"urban", "ruralUrban", "Urban area", "urban", true},

		{"phone", "phone", "call me at 9876543210 please", "9876543210", true},
		{"phone too short", "phone", "call 12345", "", false},
		{"pincode", "pincode", "pin is 110001", "110001", true},
		{"email", "email", "write to asha@example.com", "asha@example.com", true},

		{"yes word", "bplCard", "yes I have one", "yes", true},
		{"haan maps to yes", "farmer", "haan main kisan hoon", "yes", true},
		{"no word", "disability", "no", "no", true},
		{"nothing is not no", "disability", "nothing special", "", false},

		{"field without rule", "collegeName", "IIT Delhi", "", false},
		{"unknown field", "shoeSize", "42", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.field, tt.message)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Extract(%q, %q) = (%q, %v), want (%q, %v)",
					tt.field, tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// Every field with a rule must extract from a message that plainly contains a
// recognizable value.
func TestExtractTotalityForRuledFields(t *testing.T) {
	samples := map[string]string{
		"dob":          "05/04/2001",
		"familyIncome": "120000",
		"gender":       "female",
		"ruralUrban":   "rural",
		"phone":        "9876543210",
		"pincode":      "110001",
		"email":        "a@b.co",
	}

	for field, sample := range samples {
		if !HasRule(field) {
			t.Fatalf("expected a rule for %q", field)
		}
		if _, ok := Extract(field, "value: "+sample); !ok {
			t.Errorf("Extract(%q) missed recognizable value %q", field, sample)
		}
	}

	// the boolean-ish attributes all share the yes/no rule
	for _, field := range []string{
		"aadhaarLinked", "bplCard", "ewsStatus", "disability", "currentlyStudying",
		"employed", "unemployedYouth", "selfEmployed", "skillCertificate",
		"bankLinked", "farmer", "landOwnership", "pregnantMother",
		"seniorCitizen", "minority",
	} {
		if v, ok := Extract(field, "yes please"); !ok || v != "yes" {
			t.Errorf("Extract(%q, yes) = (%q, %v)", field, v, ok)
		}
	}
}
