package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Quiet    bool           `mapstructure:"quiet"`
	LogLevel string         `mapstructure:"logLevel" validate:"required,oneof=DEBUG INFO WARNING ERROR CRITICAL"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Output   OutputConfig   `mapstructure:"output" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"omitempty"`
}

// DatabaseConfig holds recording store settings. The store is read-only;
// these only control where to find it and how long to wait for it.
type DatabaseConfig struct {
	Path           string `mapstructure:"path" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" validate:"required,min=1,max=600"`
}

// OutputConfig holds settings for the generated prompt files.
type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
	// MaxFileSizeBytes caps the serialized output; exceeding it aborts the
	// run before anything is written.
	MaxFileSizeBytes int64 `mapstructure:"maxFileSizeBytes" validate:"required,min=1"`
	// MaxEventsWithoutConfirm is the event count above which the CLI asks
	// before issuing that many generation calls.
	MaxEventsWithoutConfirm int `mapstructure:"maxEventsWithoutConfirm" validate:"required,min=1"`
}

// LLMConfig holds configuration for the description model.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic ollama gemini"`
	Model    string `mapstructure:"model" validate:"omitempty,min=1"`
	APIKey   string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	// BaseURL is only used by the ollama provider.
	BaseURL string `mapstructure:"baseURL" validate:"omitempty,url"`
	// RequestTimeoutSeconds bounds each generation call.
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// MaxRetries controls automatic retries on recoverable generation errors.
	MaxRetries int `mapstructure:"maxRetries" validate:"omitempty,min=0,max=3"`
	// MaxConcurrent bounds in-flight generation calls. Results are always
	// reassembled in event order regardless of this value.
	MaxConcurrent int `mapstructure:"maxConcurrent" validate:"omitempty,min=1,max=16"`
}
