// SPDX-License-Identifier: MPL-2.0

// Package ovpn renders OpenVPN client profiles with inline credentials.
package ovpn

import (
	"bytes"
	_ "embed"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"text/template"

	"toolbelt-cli/internal/issue"
)

const (
	// DefaultPort is the IANA port for OpenVPN.
	DefaultPort = 1194

	staticKeyHeader = "-----BEGIN OpenVPN Static key V1-----"
)

var (
	ErrInvalidRemote = errors.New("invalid remote")
	ErrInvalidProto  = errors.New("proto must be udp or tcp")
	ErrInvalidPEM    = errors.New("invalid PEM material")
	ErrOutputExists  = errors.New("output file already exists")

	//go:embed templates/client.ovpn.tmpl
	defaultTemplate string
)

// Profile is everything the template needs.
type Profile struct {
	Host    string
	Port    int
	Proto   string
	CA      string
	Cert    string
	Key     string
	TLSAuth string
}

// Files names the credential files to inline.
type Files struct {
	CA      string
	Cert    string
	Key     string
	TLSAuth string
}

// ParseRemote splits HOST[:PORT]; IPv6 literals need brackets to carry a port.
func ParseRemote(s string) (host string, port int, err error) {
	if s == "" {
		return "", 0, fmt.Errorf("%w: empty", ErrInvalidRemote)
	}

	host, port = s, DefaultPort
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		host = strings.Trim(s, "[]")
	} else if strings.HasPrefix(s, "[") || strings.Count(s, ":") == 1 {
		var portStr string
		if host, portStr, err = net.SplitHostPort(s); err != nil {
			return "", 0, fmt.Errorf("%w %q: %w", ErrInvalidRemote, s, err)
		}
		if port, err = strconv.Atoi(portStr); err != nil || port < 1 || port > 65535 {
			return "", 0, fmt.Errorf("%w %q: port must be 1-65535", ErrInvalidRemote, s)
		}
	}
	if host == "" {
		return "", 0, fmt.Errorf("%w %q: missing host", ErrInvalidRemote, s)
	}
	return host, port, nil
}

// ValidateProto accepts udp and tcp.
func ValidateProto(p string) error {
	if p != "udp" && p != "tcp" {
		return fmt.Errorf("%w, got %q", ErrInvalidProto, p)
	}
	return nil
}

// LoadFiles reads and checks the credential files.
func LoadFiles(f Files) (ca, cert, key, tlsAuth string, err error) {
	if ca, err = readPEM(f.CA, "CA", isCertificate); err != nil {
		return
	}
	if cert, err = readPEM(f.Cert, "certificate", isCertificate); err != nil {
		return
	}
	if key, err = readPEM(f.Key, "private key", isPrivateKey); err != nil {
		return
	}
	if f.TLSAuth != "" {
		if tlsAuth, err = readStaticKey(f.TLSAuth); err != nil {
			return
		}
	}
	return
}

// Render executes tmpl (the built-in template when empty) for p.
func Render(w io.Writer, tmpl string, p Profile) error {
	if tmpl == "" {
		tmpl = defaultTemplate
	}
	t, err := template.New("profile").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// WriteNew renders into path, which must not exist; the file gets mode 0600.
func WriteNew(path, tmpl string, p Profile) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return issue.NewErrorContext().
			WithOperation("write profile").
			WithResource(path).
			WithSuggestion("Remove the old profile or pick another --out").
			Wrap(ErrOutputExists).
			BuildError()
	}
	if err != nil {
		return issue.WrapWithContext(err, "write profile", path)
	}
	if err := Render(f, tmpl, p); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func isCertificate(typ string) bool { return typ == "CERTIFICATE" }

func isPrivateKey(typ string) bool { return strings.HasSuffix(typ, "PRIVATE KEY") }

func readPEM(path, what string, accept func(string) bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", issue.WrapWithContext(err, "read "+what, path)
	}

	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if accept(block.Type) {
			return strings.TrimSpace(string(data)), nil
		}
	}
	return "", issue.WrapWithContext(fmt.Errorf("%w: no suitable PEM block in %s", ErrInvalidPEM, what), "read "+what, path)
}

func readStaticKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", issue.WrapWithContext(err, "read tls-auth key", path)
	}
	if !bytes.Contains(data, []byte(staticKeyHeader)) {
		return "", issue.WrapWithContext(fmt.Errorf("%w: missing %q", ErrInvalidPEM, staticKeyHeader), "read tls-auth key", path)
	}
	return strings.TrimSpace(string(data)), nil
}
