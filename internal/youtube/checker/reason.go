package checker

// Reasons recorded on classified comments.
const (
	ReasonProfanity     = "profanity pattern detected"
	ReasonAdvertisement = "advertisement/promotion suspected"
	ReasonEmoji         = "emoji reaction"
	ReasonPositive      = "positive reaction"
	ReasonDefaultAI     = "AI analysis"
	ReasonMissing       = "classification result missing"
	ReasonError         = "classification error"
)
