package conf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/usecase"
)

// PromptsConfig contains prompt configuration loaded from YAML.
type PromptsConfig struct {
	Commitment CommitmentPrompts `yaml:"commitment"`
}

// CommitmentPrompts contains the commitment detection prompt settings.
type CommitmentPrompts struct {
	// Template overrides the built-in extraction instruction. It must
	// keep the two %s verbs: open commitments first, conversation second.
	Template string `yaml:"template"`

	// TimeZone renders message timestamps and calendar events.
	TimeZone string `yaml:"time_zone"`
}

// LoadPromptsConfig loads prompt configuration from a YAML file,
// falling back to the built-in defaults when no file is found.
func LoadPromptsConfig(configPath string) (*PromptsConfig, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/prompts.yaml",
			"/etc/my-besto-friendo/prompts.yaml",
		}
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, "configs", "prompts.yaml"))
		}
	}

	var data []byte
	var loadedPath string

	for _, p := range paths {
		if p == "" {
			continue
		}
		if b, err := os.ReadFile(p); err == nil {
			data = b
			loadedPath = p
			break
		}
	}

	if data == nil {
		return DefaultPromptsConfig(), nil
	}

	slog.Info("loading prompts config", slog.String("path", loadedPath))

	var config PromptsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse prompts.yaml: %w", err)
	}
	config.fillDefaults()
	return &config, nil
}

// DefaultPromptsConfig returns the built-in prompt configuration.
func DefaultPromptsConfig() *PromptsConfig {
	return &PromptsConfig{
		Commitment: CommitmentPrompts{
			Template: usecase.DefaultPromptTemplate,
			TimeZone: "Asia/Kolkata",
		},
	}
}

func (c *PromptsConfig) fillDefaults() {
	defaults := DefaultPromptsConfig()
	if c.Commitment.Template == "" {
		c.Commitment.Template = defaults.Commitment.Template
	}
	if c.Commitment.TimeZone == "" {
		c.Commitment.TimeZone = defaults.Commitment.TimeZone
	}
}
