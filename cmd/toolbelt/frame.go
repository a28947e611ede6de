// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"toolbelt-cli/internal/ethframe"

	"github.com/spf13/cobra"
)

type frameFlags struct {
	iface      string
	dst        string
	src        string
	etherType  string
	payload    string
	payloadHex string
	fill       string
	fillLen    int
	pad        bool
	fcs        bool
	count      int
}

// newSendFrameCommand creates the `toolbelt send-frame` command.
func newSendFrameCommand(app *App) *cobra.Command {
	var ff frameFlags

	cmd := &cobra.Command{
		Use:   "send-frame --interface IF [flags]",
		Short: "Send a raw Ethernet II frame",
		Long: `Build an Ethernet II frame and send it on a network interface through
a raw packet socket (Linux, needs CAP_NET_RAW).

Without payload flags the frame carries 100 'P' bytes between
01:02:03:04:05:06 and itself, with ethertype 0x0801.
With the global --dry-run the frame is printed as a hex dump.`,
		Example: `  toolbelt send-frame --interface eth0
  toolbelt send-frame -i eth0 --dst ff:ff:ff:ff:ff:ff --payload-hex "de ad be ef" --pad
  toolbelt -n send-frame -i eth0 --payload-fill 0x00 --payload-len 46 --fcs`,
		Args: usageArgs(cobra.NoArgs),
		RunE: app.run(func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("payload-len") && !cmd.Flags().Changed("payload-fill") {
				return usageError(errors.New("--payload-len only applies together with --payload-fill"))
			}
			frame, err := ff.build()
			if err != nil {
				return err
			}
			raw := frame.Bytes(ff.pad, ff.fcs)

			if app.flags.dryRun {
				fmt.Fprintf(app.stdout, "%s %d x %d bytes\n", CmdStyle.Render(ff.iface), ff.count, len(raw))
				fmt.Fprint(app.stdout, ethframe.Dump(raw))
				return nil
			}
			return ethframe.Send(ff.iface, raw, ff.count)
		}),
	}

	f := cmd.Flags()
	f.StringVarP(&ff.iface, "interface", "i", "", "network interface to send on")
	f.StringVar(&ff.dst, "dst", ethframe.DefaultMAC.String(), "destination MAC address")
	f.StringVar(&ff.src, "src", ethframe.DefaultMAC.String(), "source MAC address")
	f.StringVar(&ff.etherType, "ethertype", fmt.Sprintf("0x%04x", ethframe.DefaultEtherType), "ethertype, decimal or 0x-prefixed hex")
	f.StringVar(&ff.payload, "payload", "", "payload text")
	f.StringVar(&ff.payloadHex, "payload-hex", "", "payload as hex digits")
	f.StringVar(&ff.fill, "payload-fill", "", "fill the payload with this byte (number or character)")
	f.IntVar(&ff.fillLen, "payload-len", ethframe.DefaultPayloadLen, "payload length for --payload-fill")
	f.BoolVar(&ff.pad, "pad", false, "zero-pad the payload to the 46-byte minimum")
	f.BoolVar(&ff.fcs, "fcs", false, "append the CRC-32 frame check sequence")
	f.IntVarP(&ff.count, "count", "c", 1, "number of copies to send")
	_ = cmd.MarkFlagRequired("interface")
	cmd.MarkFlagsMutuallyExclusive("payload", "payload-hex", "payload-fill")
	return cmd
}

func (ff *frameFlags) build() (ethframe.Frame, error) {
	frame := ethframe.DefaultFrame()

	var err error
	if frame.Dst, err = ethframe.ParseMAC(ff.dst); err != nil {
		return frame, err
	}
	if frame.Src, err = ethframe.ParseMAC(ff.src); err != nil {
		return frame, err
	}
	if frame.EtherType, err = ethframe.ParseEtherType(ff.etherType); err != nil {
		return frame, err
	}

	switch {
	case ff.payload != "":
		frame.Payload = []byte(ff.payload)
	case ff.payloadHex != "":
		if frame.Payload, err = ethframe.ParseHexPayload(ff.payloadHex); err != nil {
			return frame, err
		}
	case ff.fill != "":
		b, err := ethframe.ParseFillByte(ff.fill)
		if err != nil {
			return frame, err
		}
		if ff.fillLen < 0 || ff.fillLen > ethframe.MaxPayloadLen {
			return frame, fmt.Errorf("%w: length %d out of range 0..%d", ethframe.ErrInvalidPayload, ff.fillLen, ethframe.MaxPayloadLen)
		}
		frame.Payload = ethframe.FillPayload(b, ff.fillLen)
	}

	if ff.count < 1 {
		return frame, fmt.Errorf("count must be at least 1, got %d", ff.count)
	}
	return frame, frame.Validate()
}
