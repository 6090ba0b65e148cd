package config

import (
	"testing"
	"time"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		"SMTP_USERNAME": "sender@example.com",
		"SMTP_PASSWORD": "secret",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Store.Driver != StorePostgres {
		t.Errorf("expected postgres store by default, got %q", cfg.Store.Driver)
	}
	if cfg.Mail.OperatorAddress != "brainscroller@gmail.com" {
		t.Errorf("unexpected operator address %q", cfg.Mail.OperatorAddress)
	}
	if cfg.Mail.FromAddress != "sender@example.com" {
		t.Errorf("expected from address to fall back to SMTP username, got %q", cfg.Mail.FromAddress)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("expected 30s write timeout, got %v", cfg.Server.WriteTimeout)
	}
	if !cfg.Mail.Enabled() {
		t.Error("expected mail to be enabled")
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	setEnv(t, map[string]string{
		"MAIL_DRIVER":  "none",
		"STORE_DRIVER": "none",
		"CORS_ORIGINS": "https://brainscroller.com,https://www.brainscroller.com",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://www.brainscroller.com" {
		t.Errorf("unexpected origins %v", cfg.Server.CORSOrigins)
	}
	if cfg.Mail.Enabled() {
		t.Error("expected mail to be disabled")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Store: StoreConfig{Driver: StoreNone},
			Mail:  MailConfig{Driver: MailLog, OperatorAddress: "ops@example.com"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown store", func(c *Config) { c.Store.Driver = "mongo" }, true},
		{"unknown mail", func(c *Config) { c.Mail.Driver = "pigeon" }, true},
		{"supabase without key", func(c *Config) {
			c.Store.Driver = StoreSupabase
			c.Store.SupabaseURL = "https://x.supabase.co"
		}, true},
		{"supabase complete", func(c *Config) {
			c.Store.Driver = StoreSupabase
			c.Store.SupabaseURL = "https://x.supabase.co"
			c.Store.SupabaseKey = "key"
		}, false},
		{"smtp without credentials", func(c *Config) {
			c.Mail.Driver = MailSMTP
			c.Mail.SMTPHost = "smtp.example.com"
		}, true},
		{"postgres custom table", func(c *Config) {
			c.Store.Driver = StorePostgres
			c.Store.DatabaseURL = "postgres://localhost/db"
			c.Store.Table = "contact_messages"
		}, true},
		{"sqlite default table", func(c *Config) {
			c.Store.Driver = StoreSQLite
			c.Store.SQLitePath = "/tmp/m.db"
			c.Store.Table = DefaultMessagesTable
		}, false},
		{"supabase custom table", func(c *Config) {
			c.Store.Driver = StoreSupabase
			c.Store.SupabaseURL = "https://x.supabase.co"
			c.Store.SupabaseKey = "key"
			c.Store.Table = "contact_messages"
		}, false},
		{"file without path", func(c *Config) { c.Mail.Driver = MailFile }, true},
		{"missing operator", func(c *Config) { c.Mail.OperatorAddress = "" }, true},
		{"missing operator with mail off", func(c *Config) {
			c.Mail.Driver = MailNone
			c.Mail.OperatorAddress = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMigrate(t *testing.T) {
	setEnv(t, map[string]string{"STORE_DRIVER": "sqlite", "SQLITE_PATH": "/tmp/m.db"})

	cfg, err := LoadMigrate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.SQLitePath != "/tmp/m.db" {
		t.Errorf("unexpected sqlite path %q", cfg.Store.SQLitePath)
	}
}

func TestLoadMigrate_RejectsRemoteStores(t *testing.T) {
	for _, driver := range []string{StoreSupabase, StoreNone} {
		t.Run(driver, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", driver)
			if _, err := LoadMigrate(); err == nil {
				t.Errorf("expected error for %s", driver)
			}
		})
	}
}
