package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FRUIT_TEST_VALUE", "x")
	if got := GetEnv("FRUIT_TEST_VALUE", "y"); got != "x" {
		t.Errorf("GetEnv = %q, want x", got)
	}
	if got := GetEnv("FRUIT_TEST_UNSET", "y"); got != "y" {
		t.Errorf("GetEnv = %q, want fallback y", got)
	}
}

func TestGetEnvFloatAndBool(t *testing.T) {
	t.Setenv("FRUIT_TEST_FLOAT", " 0.25 ")
	t.Setenv("FRUIT_TEST_BAD", "lots")
	t.Setenv("FRUIT_TEST_BOOL", "Yes")
	if got := GetEnvFloat("FRUIT_TEST_FLOAT", 1); got != 0.25 {
		t.Errorf("GetEnvFloat = %v, want 0.25", got)
	}
	if got := GetEnvFloat("FRUIT_TEST_BAD", 1); got != 1 {
		t.Errorf("GetEnvFloat = %v, want fallback", got)
	}
	if !GetEnvBool("FRUIT_TEST_BOOL", false) {
		t.Error("GetEnvBool(yes) = false")
	}
	if !GetEnvBool("FRUIT_TEST_BAD", true) {
		t.Error("unrecognised bool did not fall back")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.env")
	if err := os.WriteFile(path, []byte("FRUIT_TEST_DOTENV=from-file\nFRUIT_TEST_KEEP=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FRUIT_TEST_KEEP", "env")
	// Cleared on test end by t.Setenv's restore.
	t.Setenv("FRUIT_TEST_DOTENV", "")
	os.Unsetenv("FRUIT_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("FRUIT_TEST_DOTENV"); got != "from-file" {
		t.Errorf("FRUIT_TEST_DOTENV = %q, want from-file", got)
	}
	if got := os.Getenv("FRUIT_TEST_KEEP"); got != "env" {
		t.Errorf("FRUIT_TEST_KEEP = %q, environment should win", got)
	}
}
