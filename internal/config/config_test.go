package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
}

func noEnvFile(t *testing.T) []string {
	return []string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}
}

func TestLoad_Defaults(t *testing.T) {
	setSecrets(t)
	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "3500" || cfg.Storage.Driver != DriverMongo || cfg.Storage.Name != "todo_api" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWT.AccessExpiry != 900 || cfg.JWT.RefreshExpiry != 86400 || cfg.Cookie.MaxAge != 604800 {
		t.Fatalf("unexpected token defaults: %+v %+v", cfg.JWT, cfg.Cookie)
	}
	if !cfg.Cookie.Secure || cfg.RateLimit.Login != "5-M" || len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_EnvAndFlags(t *testing.T) {
	setSecrets(t)
	t.Setenv("PORT", "4000")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("COOKIE_SECURE", "false")
	args := append(noEnvFile(t), "--port", "5000")
	cfg, err := Load(args)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("flag should win over env, got %q", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverMemory || cfg.Cookie.Secure {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("ACCESS_TOKEN_SECRET=a\nREFRESH_TOKEN_SECRET=b\nDATABASE_NAME=from_dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("ACCESS_TOKEN_SECRET")
		os.Unsetenv("REFRESH_TOKEN_SECRET")
		os.Unsetenv("DATABASE_NAME")
	})
	cfg, err := Load([]string{"--env-file", path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Name != "from_dotenv" {
		t.Fatalf("dotenv not applied: %q", cfg.Storage.Name)
	}
}

func TestLoad_RejectsBadSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
	if _, err := Load(noEnvFile(t)); err == nil {
		t.Fatal("expected error without secrets")
	}
	t.Setenv("ACCESS_TOKEN_SECRET", "same")
	t.Setenv("REFRESH_TOKEN_SECRET", "same")
	if _, err := Load(noEnvFile(t)); err == nil {
		t.Fatal("expected error for identical secrets")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	setSecrets(t)
	t.Setenv("STORAGE_DRIVER", "postgres")
	if _, err := Load(noEnvFile(t)); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
