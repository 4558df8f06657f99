package gcnkit

import (
	"os"
	"path/filepath"
)

// Config holds all configuration for the gcnkit engine.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.gcnkit/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	// Defaults to "gcnkit". The file will be <DBName>.db inside the
	// storage directory (~/.gcnkit/ or working dir).
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath
	// is not explicitly set. Options: "home" (default) uses ~/.gcnkit/,
	// "local" uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// Chat is the LLM provider used by every language-model capability:
	// paragraph labeling, field extraction, and question answering.
	Chat LLMConfig `json:"chat" yaml:"chat"`

	// ExtractQuantities opts in to the per-category physical-quantity
	// extraction pass over scientific paragraphs.
	ExtractQuantities bool `json:"extract_quantities" yaml:"extract_quantities"`
}

// LLMConfig configures a single LLM provider endpoint.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider"` // deepseek, ollama, openai, custom
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// DefaultConfig returns a Config with sensible defaults. The database is
// stored in ~/.gcnkit/gcnkit.db and chat goes to DeepSeek, which expects
// DEEPSEEK_API_KEY in the environment or api_key in the config file.
func DefaultConfig() Config {
	return Config{
		DBName:     "gcnkit",
		StorageDir: "home",
		Chat: LLMConfig{
			Provider: "deepseek",
			Model:    "deepseek-chat",
		},
	}
}

// resolveDBPath computes the final database path from config fields.
func (c *Config) resolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "gcnkit"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		return filepath.Join(home, ".gcnkit", name+".db")
	}
}
