package gcnkit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDBPathExplicit(t *testing.T) {
	cfg := Config{DBPath: "/tmp/custom/graph.db", DBName: "ignored", StorageDir: "local"}
	if got := cfg.resolveDBPath(); got != "/tmp/custom/graph.db" {
		t.Errorf("resolveDBPath() = %q, want explicit path", got)
	}
}

func TestResolveDBPathLocal(t *testing.T) {
	cfg := Config{DBName: "catalog", StorageDir: "local"}
	if got := cfg.resolveDBPath(); got != "catalog.db" {
		t.Errorf("resolveDBPath() = %q, want %q", got, "catalog.db")
	}
}

func TestResolveDBPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	cfg := DefaultConfig()
	want := filepath.Join(home, ".gcnkit", "gcnkit.db")
	if got := cfg.resolveDBPath(); got != want {
		t.Errorf("resolveDBPath() = %q, want %q", got, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Chat.Provider != "deepseek" {
		t.Errorf("Chat.Provider = %q, want %q", cfg.Chat.Provider, "deepseek")
	}
	if cfg.Chat.Model != "deepseek-chat" {
		t.Errorf("Chat.Model = %q, want %q", cfg.Chat.Model, "deepseek-chat")
	}
	if cfg.ExtractQuantities {
		t.Error("ExtractQuantities should default to off")
	}
}
