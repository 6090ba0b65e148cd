package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/brainscroller/site/internal/config"
	"github.com/brainscroller/site/internal/mail"
	"github.com/brainscroller/site/internal/repository"
)

func TestBuildSender(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.MailConfig
		check   func(t *testing.T, s mail.Sender)
		wantErr bool
	}{
		{
			name: "none",
			cfg:  config.MailConfig{Driver: config.MailNone},
			check: func(t *testing.T, s mail.Sender) {
				if s != nil {
					t.Errorf("expected nil sender, got %T", s)
				}
			},
		},
		{
			name: "smtp",
			cfg:  config.MailConfig{Driver: config.MailSMTP, SMTPHost: "smtp.example.com", SMTPPort: 587},
			check: func(t *testing.T, s mail.Sender) {
				if _, ok := s.(*mail.SMTPSender); !ok {
					t.Errorf("expected *mail.SMTPSender, got %T", s)
				}
			},
		},
		{
			name: "log",
			cfg:  config.MailConfig{Driver: config.MailLog},
			check: func(t *testing.T, s mail.Sender) {
				if _, ok := s.(*mail.LoggingSender); !ok {
					t.Errorf("expected *mail.LoggingSender, got %T", s)
				}
			},
		},
		{
			name: "file",
			cfg:  config.MailConfig{Driver: config.MailFile, FilePath: filepath.Join(dir, "mail.log")},
			check: func(t *testing.T, s mail.Sender) {
				if _, ok := s.(*mail.FileSender); !ok {
					t.Errorf("expected *mail.FileSender, got %T", s)
				}
			},
		},
		{
			name: "log with archive",
			cfg:  config.MailConfig{Driver: config.MailLog, ArchivePath: filepath.Join(dir, "archive.log")},
			check: func(t *testing.T, s mail.Sender) {
				if _, ok := s.(*mail.CompositeSender); !ok {
					t.Errorf("expected *mail.CompositeSender, got %T", s)
				}
			},
		},
		{
			name:    "unknown",
			cfg:     config.MailConfig{Driver: "pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := buildSender(tt.cfg, logger)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildSender() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestBuildStore_None(t *testing.T) {
	st, err := buildStore(context.Background(), config.StoreConfig{Driver: config.StoreNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.close()
	if st.repo != nil || st.db != nil {
		t.Errorf("expected no repository, got %T / %T", st.repo, st.db)
	}
}

func TestBuildStore_Supabase(t *testing.T) {
	st, err := buildStore(context.Background(), config.StoreConfig{
		Driver:      config.StoreSupabase,
		SupabaseURL: "https://example.supabase.co",
		SupabaseKey: "service-role",
		Table:       "messages",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.close()
	if _, ok := st.repo.(*repository.SupabaseMessageRepository); !ok {
		t.Errorf("expected supabase repository, got %T", st.repo)
	}
}

func TestBuildStore_Unknown(t *testing.T) {
	if _, err := buildStore(context.Background(), config.StoreConfig{Driver: "mongo"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
