package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// Fixed fallbacks returned by the dialogue policy. These must stay
	// byte-stable: the frontend matches on them for retry UX.
	ChatApologyMessage       = "Sorry, I couldn't process your request. Please try again."
	ChatNotConfiguredMessage = "OpenAI API key is not set. Please contact the administrator."

	ChatGreetingMessage = "Hello! I'm your Nagrik Mitra AI assistant. I can help you find government schemes, scholarships, and check your eligibility. What would you like to know?"
)
