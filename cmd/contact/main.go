// Command contact submits one message through the site's contact form endpoint.
//
//	contact -url https://brainscroller.com -name Ana -email ana@x.io -message "Hello"
//	echo "Hello" | contact -name Ana -message -
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/brainscroller/site/internal/logging"
	"github.com/brainscroller/site/pkg/contactform"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns 0 when the message was sent, 1 on a validation failure and
// 2 when the request failed.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		baseURL  = fs.String("url", envOr("CONTACT_URL", "http://localhost:8080"), "site base URL")
		name     = fs.String("name", "", "your name (required)")
		email    = fs.String("email", "", "reply address (optional)")
		subject  = fs.String("subject", "", "subject (optional)")
		message  = fs.String("message", "", `message text, or "-" to read stdin (required)`)
		timeout  = fs.Duration("timeout", 15*time.Second, "request timeout")
		logLevel = fs.String("log-level", "warn", "log level")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	slog.SetDefault(logging.New(stderr, *logLevel, "text"))

	if *message == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "read message: %v\n", err)
			return 1
		}
		*message = strings.TrimRight(string(b), "\n")
	}

	client := contactform.NewClient(*baseURL, &http.Client{Timeout: *timeout})
	form := contactform.NewForm(client)
	form.SetFields(contactform.Fields{
		Name:    *name,
		Email:   *email,
		Subject: *subject,
		Message: *message,
	})

	err := form.Submit(context.Background())
	switch {
	case err == nil:
		fmt.Fprintln(stdout, "Message sent. Thank you!")
		return 0
	case errors.Is(err, contactform.ErrMissingFields), errors.Is(err, contactform.ErrInvalidEmail):
		fmt.Fprintln(stderr, form.Message())
		return 1
	default:
		slog.Debug("contact submit failed", "state", form.State(), "error", err)
		fmt.Fprintln(stderr, form.Message())
		return 2
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
