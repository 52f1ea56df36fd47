package services

import (
	"strings"

	"github.com/ochairo/ocrboot/internal/domain/entities"
)

// ParseYesNo interprets an answer to a yes/no question.
// Blank input takes the default; ok is false for anything unrecognized.
func ParseYesNo(input string, def bool) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return def, true
	case "y", "yes", "true":
		return true, true
	case "n", "no", "false":
		return false, true
	default:
		return false, false
	}
}

// ParseProvider interprets the API provider answer, defaulting to OPENAI
func ParseProvider(input string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "":
		return entities.ProviderOpenAI, true
	case entities.ProviderOpenAI:
		return entities.ProviderOpenAI, true
	case entities.ProviderClaude:
		return entities.ProviderClaude, true
	default:
		return "", false
	}
}

// BuildEnvRecord turns configure answers into the .env content.
// A local LLM skips the provider branch entirely; API keys are written only
// for the selected provider and only when non-blank.
func BuildEnvRecord(answers entities.ConfigAnswers) entities.EnvRecord {
	var rec entities.EnvRecord
	if answers.UseLocalLLM {
		rec.Set(entities.KeyUseLocalLLM, "True")
		return rec
	}
	rec.Set(entities.KeyUseLocalLLM, "False")

	provider := answers.Provider
	if provider == "" {
		provider = entities.ProviderOpenAI
	}
	rec.Set(entities.KeyAPIProvider, provider)

	key := strings.TrimSpace(answers.APIKey)
	if key == "" {
		return rec
	}
	switch provider {
	case entities.ProviderOpenAI:
		rec.Set(entities.KeyOpenAIAPIKey, key)
	case entities.ProviderClaude:
		rec.Set(entities.KeyAnthropicAPIKey, key)
	}
	return rec
}
