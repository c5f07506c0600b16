package mapper

import (
	"encoding/json"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Profile: entity.UserProfile{
			Dob:                  u.Dob,
			Gender:               u.Gender,
			Phone:                u.Phone,
			AadhaarLinked:        u.AadhaarLinked,
			Address:              u.Address,
			State:                u.State,
			District:             u.District,
			Pincode:              u.Pincode,
			RuralUrban:           u.RuralUrban,
			CasteCategory:        u.CasteCategory,
			FamilyIncome:         u.FamilyIncome,
			BplCard:              u.BplCard,
			RationCardType:       u.RationCardType,
			EwsStatus:            u.EwsStatus,
			Disability:           u.Disability,
			DisabilityType:       u.DisabilityType,
			MaritalStatus:        u.MaritalStatus,
			HighestQualification: u.HighestQualification,
			CurrentlyStudying:    u.CurrentlyStudying,
			Course:               u.Course,
			StudentId:            u.StudentId,
			CollegeName:          u.CollegeName,
			Employed:             u.Employed,
			Profession:           u.Profession,
			UnemployedYouth:      u.UnemployedYouth,
			SelfEmployed:         u.SelfEmployed,
			SkillCertificate:     u.SkillCertificate,
			BankLinked:           u.BankLinked,
			AccountHolder:        u.AccountHolder,
			BankName:             u.BankName,
			Ifsc:                 u.Ifsc,
			Upi:                  u.Upi,
			Farmer:               u.Farmer,
			LandOwnership:        u.LandOwnership,
			LandArea:             u.LandArea,
			PregnantMother:       u.PregnantMother,
			SeniorCitizen:        u.SeniorCitizen,
			Minority:             u.Minority,
			MinorityReligion:     u.MinorityReligion,
		},
		InterestedCategories: jsonToStrings(u.InterestedCategories),
		Languages:            jsonToStrings(u.Languages),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	p := u.Profile
	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,

		Dob:                  p.Dob,
		Gender:               p.Gender,
		Phone:                p.Phone,
		AadhaarLinked:        p.AadhaarLinked,
		Address:              p.Address,
		State:                p.State,
		District:             p.District,
		Pincode:              p.Pincode,
		RuralUrban:           p.RuralUrban,
		CasteCategory:        p.CasteCategory,
		FamilyIncome:         p.FamilyIncome,
		BplCard:              p.BplCard,
		RationCardType:       p.RationCardType,
		EwsStatus:            p.EwsStatus,
		Disability:           p.Disability,
		DisabilityType:       p.DisabilityType,
		MaritalStatus:        p.MaritalStatus,
		HighestQualification: p.HighestQualification,
		CurrentlyStudying:    p.CurrentlyStudying,
		Course:               p.Course,
		StudentId:            p.StudentId,
		CollegeName:          p.CollegeName,
		Employed:             p.Employed,
		Profession:           p.Profession,
		UnemployedYouth:      p.UnemployedYouth,
		SelfEmployed:         p.SelfEmployed,
		SkillCertificate:     p.SkillCertificate,
		BankLinked:           p.BankLinked,
		AccountHolder:        p.AccountHolder,
		BankName:             p.BankName,
		Ifsc:                 p.Ifsc,
		Upi:                  p.Upi,
		Farmer:               p.Farmer,
		LandOwnership:        p.LandOwnership,
		LandArea:             p.LandArea,
		PregnantMother:       p.PregnantMother,
		SeniorCitizen:        p.SeniorCitizen,
		Minority:             p.Minority,
		MinorityReligion:     p.MinorityReligion,

		InterestedCategories: stringsToJSON(u.InterestedCategories),
		Languages:            stringsToJSON(u.Languages),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, 0, len(models))
	for _, mu := range models {
		entities = append(entities, m.ToEntity(mu))
	}
	return entities
}

func (m *UserMapper) PasswordResetTokenToEntity(t *model.PasswordResetToken) *entity.PasswordResetToken {
	if t == nil {
		return nil
	}
	return &entity.PasswordResetToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
	}
}

func (m *UserMapper) PasswordResetTokenToModel(t *entity.PasswordResetToken) *model.PasswordResetToken {
	if t == nil {
		return nil
	}
	return &model.PasswordResetToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
	}
}

func jsonToStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func stringsToJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return raw
}
