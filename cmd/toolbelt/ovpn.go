// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"toolbelt-cli/internal/issue"
	"toolbelt-cli/internal/logging"
	"toolbelt-cli/internal/ovpn"

	"github.com/spf13/cobra"
)

// newOvpnCommand creates the `toolbelt ovpn-config` command.
func newOvpnCommand(app *App) *cobra.Command {
	var (
		files        ovpn.Files
		remote       string
		proto        string
		templatePath string
		out          string
	)

	cmd := &cobra.Command{
		Use:   "ovpn-config --remote HOST[:PORT] --ca FILE --cert FILE --key FILE [flags]",
		Short: "Render an OpenVPN client profile with inline credentials",
		Long: `Render a client .ovpn profile that embeds the CA certificate, the
client certificate and key, and optionally a tls-auth static key.

The profile is written to --out (mode 0600, never overwritten) or stdout.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: app.run(func(cmd *cobra.Command, _ []string) error {
			host, port, err := ovpn.ParseRemote(remote)
			if err != nil {
				return err
			}
			if err := ovpn.ValidateProto(proto); err != nil {
				return err
			}
			ca, cert, key, tlsAuth, err := ovpn.LoadFiles(files)
			if err != nil {
				return err
			}

			var tmpl string
			if templatePath != "" {
				raw, err := os.ReadFile(templatePath)
				if err != nil {
					return issue.WrapWithContext(err, "read template", templatePath)
				}
				tmpl = string(raw)
			}

			p := ovpn.Profile{
				Host:    host,
				Port:    port,
				Proto:   proto,
				CA:      ca,
				Cert:    cert,
				Key:     key,
				TLSAuth: tlsAuth,
			}
			if out == "" || app.flags.dryRun {
				if out != "" {
					logging.New("ovpn").Info("dry run, printing profile instead of writing it", "out", out)
				}
				return ovpn.Render(app.stdout, tmpl, p)
			}
			return ovpn.WriteNew(out, tmpl, p)
		}),
	}

	f := cmd.Flags()
	f.StringVar(&remote, "remote", "", "server address, HOST[:PORT]")
	f.StringVar(&files.CA, "ca", "", "CA certificate (PEM)")
	f.StringVar(&files.Cert, "cert", "", "client certificate (PEM)")
	f.StringVar(&files.Key, "key", "", "client private key (PEM)")
	f.StringVar(&files.TLSAuth, "tls-auth", "", "OpenVPN static key for tls-auth")
	f.StringVar(&proto, "proto", "udp", "transport protocol, udp or tcp")
	f.StringVar(&templatePath, "template", "", "text/template file replacing the built-in profile")
	f.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	for _, name := range []string{"remote", "ca", "cert", "key"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
