package main

import (
	"strings"
	"testing"
)

func TestEffectiveConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "from-env.yaml")

	if got := effectiveConfigPath("flag.yaml"); got != "flag.yaml" {
		t.Fatalf("flag value must win, got %s", got)
	}
	if got := effectiveConfigPath(""); got != "from-env.yaml" {
		t.Fatalf("expected env value, got %s", got)
	}

	t.Setenv("CONFIG_PATH", "")
	if got := effectiveConfigPath(""); got != "assets/local.yaml" {
		t.Fatalf("expected default path, got %s", got)
	}
}

func TestRunMigration_InvalidDSN(t *testing.T) {
	t.Parallel()

	err := runMigration("up", t.TempDir(), "not-a-dsn://")
	if err == nil || !strings.Contains(err.Error(), "create migrate instance") {
		t.Fatalf("expected migrate instance error, got %v", err)
	}
}
