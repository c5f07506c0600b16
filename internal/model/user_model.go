package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	FullName     string    `gorm:"type:varchar(255);not null"`

	// Eligibility attributes. Free-form strings mirroring the original
	// profile shape; empty string means "not collected yet".
	Dob                  string `gorm:"type:varchar(100)"`
	Gender               string `gorm:"type:varchar(50)"`
	Phone                string `gorm:"type:varchar(50)"`
	AadhaarLinked        string `gorm:"type:varchar(50)"`
	Address              string `gorm:"type:text"`
	State                string `gorm:"type:varchar(100)"`
	District             string `gorm:"type:varchar(100)"`
	Pincode              string `gorm:"type:varchar(20)"`
	RuralUrban           string `gorm:"type:varchar(20)"`
	CasteCategory        string `gorm:"type:varchar(50)"`
	FamilyIncome         string `gorm:"type:varchar(50)"`
	BplCard              string `gorm:"type:varchar(20)"`
	RationCardType       string `gorm:"type:varchar(50)"`
	EwsStatus            string `gorm:"type:varchar(20)"`
	Disability           string `gorm:"type:varchar(20)"`
	DisabilityType       string `gorm:"type:varchar(100)"`
	MaritalStatus        string `gorm:"type:varchar(50)"`
	HighestQualification string `gorm:"type:varchar(100)"`
	CurrentlyStudying    string `gorm:"type:varchar(20)"`
	Course               string `gorm:"type:varchar(100)"`
	StudentId            string `gorm:"type:varchar(100)"`
	CollegeName          string `gorm:"type:varchar(255)"`
	Employed             string `gorm:"type:varchar(20)"`
	Profession           string `gorm:"type:varchar(100)"`
	UnemployedYouth      string `gorm:"type:varchar(20)"`
	SelfEmployed         string `gorm:"type:varchar(20)"`
	SkillCertificate     string `gorm:"type:varchar(100)"`
	BankLinked           string `gorm:"type:varchar(20)"`
	AccountHolder        string `gorm:"type:varchar(100)"`
	BankName             string `gorm:"type:varchar(100)"`
	Ifsc                 string `gorm:"type:varchar(20)"`
	Upi                  string `gorm:"type:varchar(100)"`
	Farmer               string `gorm:"type:varchar(20)"`
	LandOwnership        string `gorm:"type:varchar(50)"`
	LandArea             string `gorm:"type:varchar(50)"`
	PregnantMother       string `gorm:"type:varchar(20)"`
	SeniorCitizen        string `gorm:"type:varchar(20)"`
	Minority             string `gorm:"type:varchar(20)"`
	MinorityReligion     string `gorm:"type:varchar(50)"`

	InterestedCategories datatypes.JSON `gorm:"type:jsonb"`
	Languages            datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type PasswordResetToken struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
