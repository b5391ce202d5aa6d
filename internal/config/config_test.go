package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aether-sh/aether/internal/shell"
)

func TestLoadAbsentFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Keybinding != shell.DefaultKeybinding {
		t.Fatalf("unexpected keybinding: %s", cfg.Keybinding)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "store_dir: /var/tmp/aether\nkeybinding: ctrl-g\npipe_alias: pa\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDir != "/var/tmp/aether" {
		t.Fatalf("unexpected store dir: %s", cfg.StoreDir)
	}
	if cfg.Keybinding != "ctrl-g" || cfg.PipeAlias != "pa" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SentinelAlias != shell.DefaultSentinelAlias {
		t.Fatalf("missing field did not default: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store_dir: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStoreRootPrecedence(t *testing.T) {
	cfg := Default()
	cfg.StoreDir = "/from/config"

	t.Setenv("AETHER_STATE_DIR", "/from/env")
	if got := cfg.StoreRoot(); got != "/from/env" {
		t.Fatalf("env override ignored: %s", got)
	}

	t.Setenv("AETHER_STATE_DIR", "")
	if got := cfg.StoreRoot(); got != "/from/config" {
		t.Fatalf("config dir ignored: %s", got)
	}

	cfg.StoreDir = ""
	if got := cfg.StoreRoot(); got != filepath.Join(os.TempDir(), "aether") {
		t.Fatalf("unexpected default: %s", got)
	}
}

func TestScriptOptions(t *testing.T) {
	t.Parallel()

	cfg := Config{Keybinding: "ctrl-g", PipeAlias: "pa", SentinelAlias: "!!"}
	opts := cfg.ScriptOptions()
	if opts.Keybinding != "ctrl-g" || opts.PipeAlias != "pa" || opts.SentinelAlias != "!!" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
