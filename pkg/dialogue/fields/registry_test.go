package fields

import (
	"reflect"
	"testing"
)

func TestMentionedIn(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"nothing mentioned", "hello there", nil},
		{"dob by phrase", "update my date of birth please", []string{"dob"}},
		{"income", "my income is 50000", []string{"familyIncome"}},
		{"registry order is kept", "my income and date of birth changed", []string{"dob", "familyIncome"}},
		{"hindi romanized keyword", "main kisan hoon", []string{"farmer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MentionedIn(tt.message)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MentionedIn(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestInferEligibilityFields(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no cues", "Open to all citizens of India.", nil},
		{"age cue", "Applicants must be of age 18 to 40.", []string{"dob"}},
		{"income cue", "Family income below 2.5 lakh.", []string{"familyIncome"}},
		{"rural and urban dedupe", "Available in rural and urban areas.", []string{"ruralUrban"}},
		{"multiple cues", "Age above 60, income below 1 lakh, rural residents only.", []string{"dob", "familyIncome", "ruralUrban"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferEligibilityFields(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InferEligibilityFields(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLookupCoversWholeRegistry(t *testing.T) {
	for _, f := range All() {
		got, ok := Lookup(f.Name)
		if !ok || got.Name != f.Name {
			t.Errorf("Lookup(%q) failed", f.Name)
		}
		if len(f.Keywords) == 0 {
			t.Errorf("field %q has no keywords", f.Name)
		}
	}
	if Known("notAField") {
		t.Error("Known must reject unregistered names")
	}
}
