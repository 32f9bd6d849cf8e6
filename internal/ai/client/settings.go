package client

import "strings"

// geminiSafetySettings relaxes provider safety filters so abusive comments can still be labeled.
var geminiSafetySettings = []map[string]any{
	{"category": "HARM_CATEGORY_HARASSMENT", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "threshold": "BLOCK_NONE"},
}

// ExtraFieldsSettings contains configuration for OpenAI API extra fields.
type ExtraFieldsSettings struct {
	MaxTokens      int
	SafetySettings []map[string]any
}

// NewExtraFieldsSettings creates default settings.
func NewExtraFieldsSettings() *ExtraFieldsSettings {
	return &ExtraFieldsSettings{
		MaxTokens: 8192,
	}
}

// ForModel applies model-specific settings for Gemini models served behind OpenAI-compatible gateways.
func (s *ExtraFieldsSettings) ForModel(modelName string) *ExtraFieldsSettings {
	if strings.Contains(strings.ToLower(modelName), "gemini") {
		s.SafetySettings = geminiSafetySettings
	}

	return s
}

// Build converts the settings to a map for the OpenAI API.
func (s *ExtraFieldsSettings) Build() map[string]any {
	fields := map[string]any{
		"max_tokens": s.MaxTokens,
	}

	if s.SafetySettings != nil {
		fields["safety_settings"] = s.SafetySettings
	}

	return fields
}

// GeminiSafetySettings returns the relaxed safety thresholds keyed by harm category.
func GeminiSafetySettings() map[string]string {
	settings := make(map[string]string, len(geminiSafetySettings))
	for _, s := range geminiSafetySettings {
		settings[s["category"].(string)] = s["threshold"].(string)
	}
	return settings
}
