package lang

import "fmt"

// Per-field clarifying questions. Fields without an entry fall back to the
// generic template so an unknown field name still yields a usable question.
var clarifyTemplates = map[string]map[string]string{
	English: {
		"dob":          "Please share your date of birth (for example 05/04/2001).",
		"gender":       "Please tell me your gender (male, female or other).",
		"familyIncome": "Please tell me your annual family income in rupees.",
		"ruralUrban":   "Do you live in a rural or urban area?",
		"phone":        "Please share your 10-digit mobile number.",
		"pincode":      "Please share your 6-digit area pincode.",
		"state":        "Which state do you live in?",
		"district":     "Which district do you live in?",
	},
	Hindi: {
		"dob":          "कृपया अपनी जन्म तिथि बताएं (जैसे 05/04/2001)।",
		"gender":       "कृपया अपना लिंग बताएं (पुरुष, महिला या अन्य)।",
		"familyIncome": "कृपया अपनी वार्षिक पारिवारिक आय रुपये में बताएं।",
		"ruralUrban":   "क्या आप ग्रामीण क्षेत्र में रहते हैं या शहरी क्षेत्र में?",
		"phone":        "कृपया अपना 10 अंकों का मोबाइल नंबर बताएं।",
		"pincode":      "कृपया अपने क्षेत्र का 6 अंकों का पिनकोड बताएं।",
		"state":        "आप किस राज्य में रहते हैं?",
		"district":     "आप किस जिले में रहते हैं?",
	},
	Hinglish: {
		"dob":          "Apni date of birth batayein (jaise 05/04/2001).",
		"gender":       "Apna gender batayein (male, female ya other).",
		"familyIncome": "Apni saalana family income rupees mein batayein.",
		"ruralUrban":   "Aap rural area mein rehte hain ya urban?",
		"phone":        "Apna 10-digit mobile number batayein.",
		"pincode":      "Apne area ka 6-digit pincode batayein.",
		"state":        "Aap kaunse state mein rehte hain?",
		"district":     "Aap kaunse district mein rehte hain?",
	},
}

var genericClarify = map[string]string{
	English:  "Please provide your %s.",
	Hindi:    "कृपया अपना %s बताएं।",
	Hinglish: "Apna %s batayein.",
}

var confirmTemplates = map[string]string{
	English:  "Thanks! I've updated your %s to %s.",
	Hindi:    "धन्यवाद! आपकी प्रोफ़ाइल में %s को %s कर दिया गया है।",
	Hinglish: "Dhanyavaad! Aapki profile mein %s ko %s update kar diya gaya hai.",
}

var languageInstructions = map[string]string{
	English:  "Reply only in English.",
	Hindi:    "Reply only in Hindi using Devanagari script.",
	Hinglish: "Reply only in Hinglish (Hindi written in Latin script).",
}

func normalize(language string) string {
	switch language {
	case Hindi, Hinglish:
		return language
	default:
		return English
	}
}

// ClarifyPrompt returns the clarifying question for a profile field in the
// given language.
func ClarifyPrompt(language, field string) string {
	language = normalize(language)
	if q, ok := clarifyTemplates[language][field]; ok {
		return q
	}
	return fmt.Sprintf(genericClarify[language], field)
}

// Confirmation returns the profile-update acknowledgement, naming the field
// and the stored value.
func Confirmation(language, field, value string) string {
	return fmt.Sprintf(confirmTemplates[normalize(language)], field, value)
}

// Instruction tells the completion model which language to answer in.
func Instruction(language string) string {
	return languageInstructions[normalize(language)]
}
