package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brainscroller/site/internal/config"
	"github.com/brainscroller/site/internal/mail"
	"github.com/brainscroller/site/internal/repository"
)

// store bundles the message repository with its health check and cleanup.
type store struct {
	repo  repository.MessageRepository // nil for STORE_DRIVER=none
	db    repository.DB                // nil for STORE_DRIVER=none
	close func()
}

func buildStore(ctx context.Context, cfg config.StoreConfig) (*store, error) {
	switch cfg.Driver {
	case config.StorePostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &store{
			repo:  repository.NewPgMessageRepository(pool, cfg.Table),
			db:    pool,
			close: pool.Close,
		}, nil

	case config.StoreSQLite:
		db, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo := repository.NewSQLiteMessageRepository(db, cfg.Table)
		return &store{repo: repo, db: repo, close: func() { _ = db.Close() }}, nil

	case config.StoreSupabase:
		repo, err := repository.NewSupabaseMessageRepository(repository.SupabaseConfig{
			ProjectURL: cfg.SupabaseURL,
			APIKey:     cfg.SupabaseKey,
			Table:      cfg.Table,
		})
		if err != nil {
			return nil, err
		}
		return &store{repo: repo, db: repo, close: func() {}}, nil

	case config.StoreNone:
		return &store{close: func() {}}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// buildSender returns nil for MAIL_DRIVER=none. When ArchivePath is set,
// every delivered notification is also appended to that file; archive
// failures do not fail the delivery.
func buildSender(cfg config.MailConfig, logger *slog.Logger) (mail.Sender, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	var primary mail.Sender
	switch cfg.Driver {
	case config.MailSMTP:
		primary = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.FromAddress,
		})
	case config.MailLog:
		primary = mail.NewLoggingSender(logger)
	case config.MailFile:
		fs, err := mail.NewFileSender(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		primary = fs
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}

	if cfg.ArchivePath == "" {
		return primary, nil
	}
	archive, err := mail.NewFileSender(cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("open mail archive: %w", err)
	}
	cs := mail.NewCompositeSender(primary)
	cs.AddBestEffort(archive)
	return cs, nil
}

func newComposer(cfg config.MailConfig) *mail.Composer {
	return mail.NewComposer(mail.ComposerConfig{
		FromName:    cfg.FromName,
		FromAddress: cfg.FromAddress,
		Operator:    cfg.OperatorAddress,
		SubjectTag:  cfg.SubjectTag,
	})
}
