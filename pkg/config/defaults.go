package config

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultModel    = "gemini-2.5-flash-preview-09-2025"

	defaultHistoryWindow = 10
	defaultMaxAttempts   = 5
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			Endpoint: defaultEndpoint,
			Model:    defaultModel,
		},
		Chat: ChatConfig{
			HistoryWindow: defaultHistoryWindow,
			MaxAttempts:   defaultMaxAttempts,
		},
	}
}
