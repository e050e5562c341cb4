package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/usecase"
)

// Config represents application configuration.
type Config struct {
	// Window configuration
	Window WindowConfig

	// Commitment store configuration
	Store StoreConfig

	// OpenAI-compatible completion configuration
	OpenAI OpenAIConfig

	// Lark calendar configuration
	Lark LarkConfig

	// Resolver configuration
	Resolver ResolverConfig

	// Ingestion boundary configuration
	Ingest IngestConfig

	// Administrative API configuration
	Admin AdminConfig

	// Prompts configuration (loaded from YAML)
	Prompts *PromptsConfig

	// Debug mode
	Debug bool
}

// WindowConfig contains message window configuration.
type WindowConfig struct {
	MaxSize int
}

// StoreConfig contains commitment store configuration.
type StoreConfig struct {
	DBPath string
}

// OpenAIConfig contains completion capability configuration.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LarkConfig contains calendar capability configuration.
type LarkConfig struct {
	AppID      string
	AppSecret  string
	CalendarID string
	Timezone   string
}

// ResolverConfig contains resolution cycle configuration.
type ResolverConfig struct {
	ModelTimeOffset time.Duration
}

// IngestConfig contains ingestion configuration.
type IngestConfig struct {
	Addr                    string
	WhitelistedParticipants []string
}

// AdminConfig contains admin API configuration.
type AdminConfig struct {
	Addr string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	// Commitment DB path
	dbPath := os.Getenv("COMMITMENT_DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".my-besto-friendo", "commitments.db")
	}

	// Window capacity
	maxWindowSize := 15
	if val := os.Getenv("MAX_WINDOW_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			maxWindowSize = parsed
		}
	}

	// Completion timeout
	completionTimeout := 30 * time.Second
	if val := os.Getenv("COMPLETION_TIMEOUT"); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			completionTimeout = parsed
		}
	}

	// Offset compensating the model's fixed-zone wall-clock timestamps
	modelTimeOffset := 5*time.Hour + 30*time.Minute
	if val := os.Getenv("MODEL_TIME_OFFSET"); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			modelTimeOffset = parsed
		}
	}

	var whitelist []string
	if val := os.Getenv("WHITELISTED_PARTICIPANTS"); val != "" {
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				whitelist = append(whitelist, p)
			}
		}
	}

	ingestAddr := os.Getenv("INGEST_ADDR")
	if ingestAddr == "" {
		ingestAddr = ":8080"
	}
	adminAddr := os.Getenv("ADMIN_ADDR")
	if adminAddr == "" {
		adminAddr = "127.0.0.1:9877"
	}

	// Load prompts from YAML
	promptsConfig, _ := LoadPromptsConfig(os.Getenv("PROMPTS_CONFIG_PATH"))

	return &Config{
		Window: WindowConfig{
			MaxSize: maxWindowSize,
		},
		Store: StoreConfig{
			DBPath: dbPath,
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   os.Getenv("OPENAI_MODEL"),
			Timeout: completionTimeout,
		},
		Lark: LarkConfig{
			AppID:      os.Getenv("LARK_APP_ID"),
			AppSecret:  os.Getenv("LARK_APP_SECRET"),
			CalendarID: os.Getenv("LARK_CALENDAR_ID"),
			Timezone:   promptsConfig.Commitment.TimeZone,
		},
		Resolver: ResolverConfig{
			ModelTimeOffset: modelTimeOffset,
		},
		Ingest: IngestConfig{
			Addr:                    ingestAddr,
			WhitelistedParticipants: whitelist,
		},
		Admin: AdminConfig{
			Addr: adminAddr,
		},
		Prompts: promptsConfig,
		Debug:   os.Getenv("DEBUG") == "true",
	}
}

// ToPromptConfig converts to prompt configuration.
func (c *Config) ToPromptConfig() usecase.PromptConfig {
	cfg := usecase.DefaultPromptConfig()
	if c.Prompts != nil {
		if c.Prompts.Commitment.Template != "" {
			cfg.Template = c.Prompts.Commitment.Template
		}
		if loc, err := time.LoadLocation(c.Prompts.Commitment.TimeZone); err == nil {
			cfg.Location = loc
		}
	}
	return cfg
}

// ToResolverConfig converts to resolver configuration.
func (c *Config) ToResolverConfig() usecase.ResolverConfig {
	return usecase.ResolverConfig{
		ModelTimeOffset: c.Resolver.ModelTimeOffset,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Message: "required"}
	}
	if c.Lark.AppID == "" || c.Lark.AppSecret == "" {
		return &ConfigError{Field: "LARK_APP_ID/LARK_APP_SECRET", Message: "required"}
	}
	if c.Lark.CalendarID == "" {
		return &ConfigError{Field: "LARK_CALENDAR_ID", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
