package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sampleConfig struct {
	UserID  string        `split_words:"true" default:"user_01"`
	MaxHops int           `split_words:"true" default:"4"`
	Timeout time.Duration `split_words:"true" default:"5s"`
	APIKey  string        `envconfig:"API_KEY"`
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	conf, err := Load[sampleConfig]("CFGTEST_DEFAULTS", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if conf.UserID != "user_01" || conf.MaxHops != 4 || conf.Timeout != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", conf)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "CFGTEST_FILE_USER_ID=user_42\nCFGTEST_FILE_MAX_HOPS=7\nCFGTEST_FILE_API_KEY=secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("CFGTEST_FILE_USER_ID")
		os.Unsetenv("CFGTEST_FILE_MAX_HOPS")
		os.Unsetenv("CFGTEST_FILE_API_KEY")
	})

	conf, err := Load[sampleConfig]("CFGTEST_FILE", path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if conf.UserID != "user_42" {
		t.Fatalf("UserID = %q, want user_42", conf.UserID)
	}
	if conf.MaxHops != 7 {
		t.Fatalf("MaxHops = %d, want 7", conf.MaxHops)
	}
	if conf.APIKey != "secret" {
		t.Fatalf("APIKey = %q, want secret", conf.APIKey)
	}
}

func TestLoadProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CFGTEST_WIN_USER_ID=from_file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CFGTEST_WIN_USER_ID", "from_env")

	conf, err := Load[sampleConfig]("CFGTEST_WIN", path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if conf.UserID != "from_env" {
		t.Fatalf("UserID = %q, want from_env", conf.UserID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[sampleConfig]("CFGTEST_MISSING", filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected error for missing env file")
	}
}

func TestLoadLeavesCommandLineAlone(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load[sampleConfig]("CFGTEST_FLAGS", ""); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if flag.Lookup("env") != nil {
		t.Fatal("Load() registered the -env flag")
	}
}
