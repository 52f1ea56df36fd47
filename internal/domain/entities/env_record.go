package entities

import "strings"

// Recognized .env keys
const (
	KeyUseLocalLLM     = "USE_LOCAL_LLM"
	KeyAPIProvider     = "API_PROVIDER"
	KeyOpenAIAPIKey    = "OPENAI_API_KEY"
	KeyAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// API providers
const (
	ProviderOpenAI = "OPENAI"
	ProviderClaude = "CLAUDE"
)

// EnvEntry is one KEY=value line
type EnvEntry struct {
	Key   string
	Value string
}

// EnvRecord is the ordered content of the .env file
type EnvRecord struct {
	Entries []EnvEntry
}

// Set appends or replaces a key, keeping first-insertion order
func (r *EnvRecord) Set(key, value string) {
	for i := range r.Entries {
		if r.Entries[i].Key == key {
			r.Entries[i].Value = value
			return
		}
	}
	r.Entries = append(r.Entries, EnvEntry{Key: key, Value: value})
}

// Get returns the value for key and whether it is present
func (r *EnvRecord) Get(key string) (string, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// String renders the record as KEY=value lines
func (r *EnvRecord) String() string {
	var b strings.Builder
	for _, e := range r.Entries {
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(e.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// ConfigAnswers are the operator's raw answers to the configure questions
type ConfigAnswers struct {
	UseLocalLLM bool
	Provider    string
	APIKey      string
}
