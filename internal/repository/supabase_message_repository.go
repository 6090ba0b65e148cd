package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brainscroller/site/internal/model"
)

// SupabaseConfig configures SupabaseMessageRepository.
type SupabaseConfig struct {
	ProjectURL string // https://<ref>.supabase.co
	APIKey     string // service role key
	Table      string
	HTTPClient *http.Client
}

// SupabaseMessageRepository inserts messages through the Supabase REST API
// (PostgREST). The service role key bypasses row level security.
type SupabaseMessageRepository struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewSupabaseMessageRepository validates cfg and returns a repository.
func NewSupabaseMessageRepository(cfg SupabaseConfig) (*SupabaseMessageRepository, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("supabase project URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase api key is required")
	}
	if cfg.Table == "" {
		return nil, fmt.Errorf("supabase table is required")
	}
	if _, err := url.Parse(cfg.ProjectURL); err != nil {
		return nil, fmt.Errorf("invalid supabase project URL: %w", err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SupabaseMessageRepository{
		endpoint: strings.TrimRight(cfg.ProjectURL, "/") + "/rest/v1/" + url.PathEscape(cfg.Table),
		apiKey:   cfg.APIKey,
		client:   client,
	}, nil
}

var _ MessageRepository = (*SupabaseMessageRepository)(nil)

// supabaseRow is the JSON shape of a messages row. created_at is an
// ISO-8601 string.
type supabaseRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Subject   *string `json:"subject"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
	Source    string  `json:"source"`
}

// Append posts a single-row insert.
func (r *SupabaseMessageRepository) Append(ctx context.Context, msg *model.StoredMessage) error {
	body, err := json.Marshal([]supabaseRow{{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339Nano),
		Source:    msg.Source,
	}})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build insert request: %w", err)
	}
	r.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	return r.do(req)
}

// Ping issues a one-row select against the table.
func (r *SupabaseMessageRepository) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?select=id&limit=1", nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	r.setHeaders(req)
	return r.do(req)
}

func (r *SupabaseMessageRepository) setHeaders(req *http.Request) {
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
}

func (r *SupabaseMessageRepository) do(req *http.Request) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase %s: %w", req.Method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
