// SPDX-License-Identifier: MPL-2.0

// Package fetch downloads a single URL with curl.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/runner"

	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrInvalidURL is returned for unparsable URLs and unsupported schemes.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrInvalidRetries is returned for a negative retry count.
	ErrInvalidRetries = errors.New("retries must not be negative")

	allowedSchemes = []string{"http", "https", "ftp"}

	// transientExitCodes are curl failures worth retrying: DNS (6), connect
	// (7), timeout (28), TLS handshake (35), empty reply (52), receive (56).
	transientExitCodes = []int{6, 7, 28, 35, 52, 56}
)

const (
	retryInitialInterval = time.Second
	retryMaxInterval     = 30 * time.Second
)

// Options describe one download.
type Options struct {
	URL     string
	Out     string
	Retries int

	initialInterval time.Duration
}

// ParseURL accepts absolute http, https and ftp URLs.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if !slices.Contains(allowedSchemes, strings.ToLower(u.Scheme)) {
		return nil, fmt.Errorf("%w %q: scheme must be one of %s", ErrInvalidURL, raw, strings.Join(allowedSchemes, ", "))
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w %q: missing host", ErrInvalidURL, raw)
	}
	return u, nil
}

// DefaultOutput is the last path segment of u, or index.html.
func DefaultOutput(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "index.html"
	}
	return base
}

// Command builds the curl invocation.
func Command(rawURL, out string) runner.Command {
	return runner.NewCommand("curl", "--fail", "--location", "--show-error", "--silent", "--output", out, rawURL)
}

// IsTransient reports whether err is a curl exit status worth retrying.
func IsTransient(err error) bool {
	var exitErr *runner.ExitStatusError
	return errors.As(err, &exitErr) && slices.Contains(transientExitCodes, int(exitErr.Code))
}

// Fetch downloads o.URL. Transient curl failures are retried up to
// o.Retries times with exponential backoff; anything else fails at once.
func Fetch(ctx context.Context, r runner.Runner, o Options) error {
	if o.Retries < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRetries, o.Retries)
	}
	u, err := ParseURL(o.URL)
	if err != nil {
		return err
	}
	out := o.Out
	if out == "" {
		out = DefaultOutput(u)
	}

	cmd := Command(o.URL, out)
	log := logging.New("fetch")

	operation := func() error {
		err := r.Run(ctx, cmd).Err(cmd)
		if err == nil || IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("transient download failure, retrying", "url", o.URL, "error", err, "wait", wait)
	}

	return backoff.RetryNotify(operation, newRetryBackoff(ctx, o.Retries, o.initialInterval), notify)
}

func newRetryBackoff(ctx context.Context, retries int, initial time.Duration) backoff.BackOff {
	if initial <= 0 {
		initial = retryInitialInterval
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = retryMaxInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}
