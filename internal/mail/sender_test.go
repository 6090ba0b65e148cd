package mail

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	err   error
	calls int
}

func (s *stubSender) Send(ctx context.Context, to []string, subject string, raw []byte) error {
	s.calls++
	return s.err
}

func TestSMTPSender_Send(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "sender@example.com"})

	var gotAddr, gotFrom string
	var gotTo []string
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}

	err := s.Send(context.Background(), []string{"ops@example.com"}, "hi", []byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "sender@example.com", gotFrom)
	assert.Equal(t, []string{"ops@example.com"}, gotTo)
}

func TestSMTPSender_Send_WrapsError(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	boom := errors.New("535 auth failed")
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := s.Send(context.Background(), []string{"ops@example.com"}, "hi", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestSMTPSender_Send_CanceledContext(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	called := false
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { called = true; return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, []string{"ops@example.com"}, "hi", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestLoggingSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingSender(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, s.Send(context.Background(), []string{"ops@example.com"}, "Subject line", []byte("body")))
	assert.Contains(t, buf.String(), "Subject line")
	assert.Contains(t, buf.String(), "component=mail")
}

func TestFileSender_AppendsMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mail.log")
	s, err := NewFileSender(path)
	require.NoError(t, err)

	require.NoError(t, s.Send(context.Background(), []string{"ops@example.com"}, "first", []byte("one")))
	require.NoError(t, s.Send(context.Background(), []string{"ops@example.com"}, "second", []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `subject="first"`)
	assert.Contains(t, string(data), "one")
	assert.Contains(t, string(data), "two")
}

func TestNewFileSender_EmptyPath(t *testing.T) {
	_, err := NewFileSender("  ")
	assert.Error(t, err)
}

func TestCompositeSender(t *testing.T) {
	ok := &stubSender{}
	failing := &stubSender{err: errors.New("disk full")}

	cs := NewCompositeSender(ok, nil, failing)
	err := cs.Send(context.Background(), []string{"ops@example.com"}, "s", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, failing.err)
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)
}

func TestCompositeSender_BestEffortFailureIgnored(t *testing.T) {
	primary := &stubSender{}
	archive := &stubSender{err: errors.New("disk full")}

	cs := NewCompositeSender(primary)
	cs.AddBestEffort(archive)
	err := cs.Send(context.Background(), []string{"ops@example.com"}, "s", []byte("raw"))

	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, archive.calls)
}

func TestCompositeSender_BestEffortSkippedWhenPrimaryFails(t *testing.T) {
	primary := &stubSender{err: errors.New("smtp down")}
	archive := &stubSender{}

	cs := NewCompositeSender(primary)
	cs.AddBestEffort(archive)
	err := cs.Send(context.Background(), []string{"ops@example.com"}, "s", nil)

	assert.ErrorIs(t, err, primary.err)
	assert.Equal(t, 0, archive.calls)
}

func TestCompositeSender_BestEffortOnly(t *testing.T) {
	cs := NewCompositeSender()
	cs.AddBestEffort(&stubSender{})
	assert.Error(t, cs.Send(context.Background(), nil, "s", nil))
}

func TestCompositeSender_Empty(t *testing.T) {
	assert.Error(t, NewCompositeSender().Send(context.Background(), nil, "s", nil))
}
