package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileSender appends every message to a local file. Used for development
// and as an archive copy next to a real transport.
type FileSender struct {
	path string
	mu   sync.Mutex
}

// NewFileSender creates the parent directory of path and returns a FileSender.
func NewFileSender(path string) (*FileSender, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("mail file path cannot be empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mail file directory %q: %w", dir, err)
	}
	return &FileSender{path: path}, nil
}

func (s *FileSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open mail file: %w", err)
	}
	defer f.Close()

	entry := fmt.Sprintf("--- %s to=%s subject=%q ---\n", time.Now().UTC().Format(time.RFC3339Nano), strings.Join(to, ","), subject)
	entry += string(rawMessage)
	entry += "\n--- end ---\n\n"

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("write mail file: %w", err)
	}
	return nil
}
