package config

// AIConfig holds all AI-related configuration. Generation goes through the
// Gemini generateContent endpoint; answer evaluation goes through an
// OpenAI-compatible chat completions endpoint.
type AIConfig struct {
	APIKey  string `json:"-"` // Never serialize
	BaseURL string `json:"baseUrl"`
	Model   string `json:"model"`

	EvalAPIKey  string `json:"-"`
	EvalBaseURL string `json:"evalBaseUrl"`
	EvalModel   string `json:"evalModel"`

	// StaticQuestions pins generation to the built-in question set. With
	// no API key and StaticQuestions off the generator cannot start.
	StaticQuestions bool `json:"staticQuestions"`

	TimeoutMS int `json:"timeoutMs"`
}

// DefaultAIConfig reads the AI configuration from the environment.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:          getEnv("GEMINI_API_KEY", ""),
		BaseURL:         getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Model:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		EvalAPIKey:      getEnv("EVAL_API_KEY", ""),
		EvalBaseURL:     getEnv("EVAL_BASE_URL", "https://openrouter.ai/api/v1/chat/completions"),
		EvalModel:       getEnv("EVAL_MODEL", "openai/gpt-4o-mini"),
		StaticQuestions: getEnvAsBool("USE_STATIC_QUESTIONS", false),
		TimeoutMS:       getEnvAsInt("AI_TIMEOUT_MS", 10000),
	}
}

// GenerationEnabled returns true if the generation provider is configured.
func (c *AIConfig) GenerationEnabled() bool {
	return c.APIKey != ""
}

// EvalEnabled returns true if the answer evaluator is configured.
func (c *AIConfig) EvalEnabled() bool {
	return c.EvalAPIKey != ""
}

// ModelEndpoint returns the full generateContent endpoint for the
// configured generation model.
func (c *AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}
