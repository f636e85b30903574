package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "query: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Query.RetryCount != 3 {
		t.Errorf("RetryCount = %d, want 3", cfg.Query.RetryCount)
	}
	if cfg.Query.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Query.Timeout)
	}
	if cfg.Query.BackoffUnit != time.Second {
		t.Errorf("BackoffUnit = %v, want 1s", cfg.Query.BackoffUnit)
	}
	if cfg.Cache.Expiry != 5*time.Minute {
		t.Errorf("Expiry = %v, want 5m", cfg.Cache.Expiry)
	}
	if cfg.Auth.AccType != "qc" {
		t.Errorf("AccType = %q, want qc", cfg.Auth.AccType)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_OPENID", "ABCDEF1234567890")

	path := writeConfig(t, `
auth:
  openid: ${TEST_OPENID}
  token: sometoken
  acctype: wx
query:
  retry_count: 5
  timeout: 10s
cache:
  expiry: 2m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.OpenID != "ABCDEF1234567890" {
		t.Errorf("OpenID = %q, env not expanded", cfg.Auth.OpenID)
	}
	if cfg.Auth.AccType != "wx" {
		t.Errorf("AccType = %q", cfg.Auth.AccType)
	}
	if cfg.Query.RetryCount != 5 || cfg.Query.Timeout != 10*time.Second {
		t.Errorf("query config = %+v", cfg.Query)
	}
	if cfg.Cache.Expiry != 2*time.Minute {
		t.Errorf("Expiry = %v", cfg.Cache.Expiry)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded on missing file")
	}
}

func TestDefaultReadsEnvCredentials(t *testing.T) {
	t.Setenv("DELTAQUERY_OPENID", "OID1234567890")
	t.Setenv("DELTAQUERY_TOKEN", "TOK")
	t.Setenv("DELTAQUERY_ACCTYPE", "wx")

	cfg := Default()
	if cfg.Auth.OpenID != "OID1234567890" || cfg.Auth.Token != "TOK" || cfg.Auth.AccType != "wx" {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Query.RetryCount != 3 {
		t.Errorf("RetryCount = %d", cfg.Query.RetryCount)
	}
}
