package main

import (
	"log"
	"os"

	"nagrik-mitra-be/internal/model"
	"nagrik-mitra-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Scheme Catalogue...")

	schemes := []model.Scheme{
		{
			Title:       "Pradhan Mantri Awas Yojana",
			Description: "Housing subsidy for economically weaker sections and low income groups to build or buy a pucca house.",
			Category:    "Housing",
			Eligibility: "Annual family income below 3 lakh for EWS. Applicant must not own a pucca house anywhere in India.",
			Benefits:    "Interest subsidy up to 2.67 lakh on home loans.",
			Link:        "https://pmaymis.gov.in/",
			EligibilityFields: datatypes.JSON([]byte(
				`["familyIncome", "ruralUrban", "ewsStatus"]`)),
		},
		{
			Title:       "PM Kisan Samman Nidhi",
			Description: "Income support of 6000 rupees per year to all landholding farmer families, paid in three instalments.",
			Category:    "Agriculture",
			Eligibility: "Landholding farmer families. Institutional landholders and income tax payers are excluded.",
			Benefits:    "6000 rupees per year in three equal instalments, credited directly to the bank account.",
			Link:        "https://pmkisan.gov.in/",
			EligibilityFields: datatypes.JSON([]byte(
				`["farmer", "landOwnership"]`)),
		},
		{
			Title:       "Sukanya Samriddhi Yojana",
			Description: "Small deposit savings scheme for the girl child with a high interest rate and tax benefits.",
			Category:    "Financial Inclusion",
			Eligibility: "Parents or legal guardians of a girl child below 10 years of age.",
			Benefits:    "High interest savings account maturing when the girl turns 21.",
			Link:        "https://www.india.gov.in/sukanya-samriddhi-yojna",
			EligibilityFields: datatypes.JSON([]byte(
				`["gender", "dob"]`)),
		},
		{
			Title:       "Ayushman Bharat PM-JAY",
			Description: "Health insurance cover of 5 lakh rupees per family per year for secondary and tertiary hospitalisation.",
			Category:    "Health",
			Eligibility: "Families identified as deprived in the SECC database. No cap on family size or age.",
			Benefits:    "Cashless treatment up to 5 lakh per family per year at empanelled hospitals.",
			Link:        "https://pmjay.gov.in/",
			EligibilityFields: datatypes.JSON([]byte(
				`["familyIncome", "ruralUrban"]`)),
		},
		{
			Title:       "National Scholarship Portal Post-Matric Scholarship",
			Description: "Scholarships for students from minority and backward communities studying at post-matriculation levels.",
			Category:    "Education",
			Eligibility: "Students with annual family income below 2 lakh belonging to notified categories.",
			Benefits:    "Tuition fee reimbursement and maintenance allowance.",
			Link:        "https://scholarships.gov.in/",
			EligibilityFields: datatypes.JSON([]byte(
				`["familyIncome", "casteCategory", "currentlyStudying"]`)),
		},
	}

	for _, s := range schemes {
		var existing model.Scheme
		if err := db.Where("title = ?", s.Title).First(&existing).Error; err == nil {
			log.Printf("Scheme '%s' already exists, skipping...", s.Title)
			continue
		}

		if err := db.Create(&s).Error; err != nil {
			log.Printf("Error creating scheme '%s': %v", s.Title, err)
		} else {
			log.Printf("Created scheme: %s", s.Title)
		}
	}

	log.Println("Scheme seeding completed!")
}
