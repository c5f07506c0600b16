package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string

	Profile UserProfile

	InterestedCategories []string
	Languages            []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserProfile holds the eligibility attributes the assistant collects.
// An attribute is "present" when the string is non-empty; empty means
// the assistant may still ask for it.
type UserProfile struct {
	Dob                  string
	Gender               string
	Phone                string
	AadhaarLinked        string
	Address              string
	State                string
	District             string
	Pincode              string
	RuralUrban           string
	CasteCategory        string
	FamilyIncome         string
	BplCard              string
	RationCardType       string
	EwsStatus            string
	Disability           string
	DisabilityType       string
	MaritalStatus        string
	HighestQualification string
	CurrentlyStudying    string
	Course               string
	StudentId            string
	CollegeName          string
	Employed             string
	Profession           string
	UnemployedYouth      string
	SelfEmployed         string
	SkillCertificate     string
	BankLinked           string
	AccountHolder        string
	BankName             string
	Ifsc                 string
	Upi                  string
	Farmer               string
	LandOwnership        string
	LandArea             string
	PregnantMother       string
	SeniorCitizen        string
	Minority             string
	MinorityReligion     string
}

// fieldRefs maps canonical field names onto the profile struct. The same
// names are used by the dialogue field registry and the PUT /profile body.
func (p *UserProfile) fieldRefs() map[string]*string {
	return map[string]*string{
		"dob":                  &p.Dob,
		"gender":               &p.Gender,
		"phone":                &p.Phone,
		"aadhaarLinked":        &p.AadhaarLinked,
		"address":              &p.Address,
		"state":                &p.State,
		"district":             &p.District,
		"pincode":              &p.Pincode,
		"ruralUrban":           &p.RuralUrban,
		"casteCategory":        &p.CasteCategory,
		"familyIncome":         &p.FamilyIncome,
		"bplCard":              &p.BplCard,
		"rationCardType":       &p.RationCardType,
		"ewsStatus":            &p.EwsStatus,
		"disability":           &p.Disability,
		"disabilityType":       &p.DisabilityType,
		"maritalStatus":        &p.MaritalStatus,
		"highestQualification": &p.HighestQualification,
		"currentlyStudying":    &p.CurrentlyStudying,
		"course":               &p.Course,
		"studentId":            &p.StudentId,
		"collegeName":          &p.CollegeName,
		"employed":             &p.Employed,
		"profession":           &p.Profession,
		"unemployedYouth":      &p.UnemployedYouth,
		"selfEmployed":         &p.SelfEmployed,
		"skillCertificate":     &p.SkillCertificate,
		"bankLinked":           &p.BankLinked,
		"accountHolder":        &p.AccountHolder,
		"bankName":             &p.BankName,
		"ifsc":                 &p.Ifsc,
		"upi":                  &p.Upi,
		"farmer":               &p.Farmer,
		"landOwnership":        &p.LandOwnership,
		"landArea":             &p.LandArea,
		"pregnantMother":       &p.PregnantMother,
		"seniorCitizen":        &p.SeniorCitizen,
		"minority":             &p.Minority,
		"minorityReligion":     &p.MinorityReligion,
	}
}

// Field looks up a profile attribute by its canonical name. Unknown names
// return the empty string.
func (p *UserProfile) Field(name string) string {
	if ref, ok := p.fieldRefs()[name]; ok {
		return *ref
	}
	return ""
}

// SetField assigns a profile attribute by name. Returns false for names
// that are not profile attributes.
func (p *UserProfile) SetField(name, value string) bool {
	if ref, ok := p.fieldRefs()[name]; ok {
		*ref = value
		return true
	}
	return false
}

// ProfileMap flattens the user into the field map consumed by the dialogue
// policy. The legacy "name" key is aliased to fullName: older profile
// records stored the display name under "name".
func (u *User) ProfileMap() map[string]string {
	m := make(map[string]string, 42)
	for name, ref := range u.Profile.fieldRefs() {
		if *ref != "" {
			m[name] = *ref
		}
	}
	if u.FullName != "" {
		m["fullName"] = u.FullName
		m["name"] = u.FullName
	}
	if u.Email != "" {
		m["email"] = u.Email
	}
	return m
}

type PasswordResetToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
