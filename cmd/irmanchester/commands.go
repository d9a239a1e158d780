package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/irmanchester/internal/capture"
	"github.com/danmuck/irmanchester/internal/config"
	"github.com/danmuck/irmanchester/internal/ir"
	"github.com/danmuck/irmanchester/internal/manchester"
	"github.com/danmuck/irmanchester/internal/timing"
)

const anyProtocol = "any"

// errRawLeadingSpace rejects raw captures whose first bit would merge into
// the leading gap and never decode.
var errRawLeadingSpace = errors.New("raw capture would start with a space")

func newEncodeCmd(a *app) *cobra.Command {
	var (
		protocol string
		bits     int
		repeat   uint
		format   string
		out      string
		raw      bool
	)
	cmd := &cobra.Command{
		Use:   "encode VALUE",
		Short: "Encode a value into a pulse record",
		Long: `Encode VALUE (decimal, 0x hex or 0b binary) and write the pulse record.

With --raw the pulses are rendered as a receiver would capture them:
adjacent same-level pulses merge and a leading gap is prepended. Values
whose top bit is set are rejected: their first space would merge into that
gap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseUint(strings.ReplaceAll(args[0], "_", ""), 0, 64)
			if err != nil {
				return fmt.Errorf("parse value %q: %w", args[0], err)
			}
			protocol = pick(cmd, "protocol", protocol, a.cfg.Encode.Protocol)
			if !cmd.Flags().Changed("bits") {
				bits = a.cfg.Encode.Bits
			}
			if !cmd.Flags().Changed("repeat") {
				repeat = a.cfg.Encode.Repeat
			}

			if raw && protocol == manchester.Name && manchester.LeadsWithSpace(value, bits) {
				return fmt.Errorf("%w: %#x in %d bits", errRawLeadingSpace, value, bits)
			}

			var rec ir.Recorder
			sender := ir.NewSender(a.registry, &rec, &rec, a.log())
			if err := sender.Send(protocol, value, bits, repeat); err != nil {
				return err
			}

			record := capture.FromPulses(protocol, bits, value, repeat, rec.Pulses)
			if raw {
				record = capture.FromCapture(protocol, bits, timing.CaptureFromPulses(rec.Pulses, manchester.Gap))
				record.Value = value
				record.Repeat = repeat
			}
			codec, err := a.codec(format)
			if err != nil {
				return err
			}
			b, err := codec.Encode(record)
			if err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
			return writeOutput(cmd, out, b)
		},
	}
	cmd.Flags().StringVarP(&protocol, "protocol", "p", "", "protocol name")
	cmd.Flags().IntVarP(&bits, "bits", "n", 0, "payload width in bits")
	cmd.Flags().UintVarP(&repeat, "repeat", "r", 0, "extra transmissions")
	cmd.Flags().StringVarP(&format, "format", "f", "", "record format: "+strings.Join(capture.Formats(), "|"))
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output path")
	cmd.Flags().BoolVar(&raw, "raw", false, "write a receiver-style capture")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		protocol string
		bits     int
		offset   int
		strict   bool
		scan     bool
		format   string
	)
	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode a pulse record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			protocol = pick(cmd, "protocol", protocol, a.cfg.Decode.Protocol)
			if !cmd.Flags().Changed("bits") {
				bits = a.cfg.Decode.Bits
			}
			if !cmd.Flags().Changed("strict") {
				strict = a.cfg.Decode.Strict
			}
			if !cmd.Flags().Changed("scan") {
				scan = a.cfg.Decode.Scan
			}

			b, err := readInput(args[0])
			if err != nil {
				return err
			}
			codec, err := a.codec(format)
			if err != nil {
				return err
			}
			record, err := codec.Decode(b)
			if err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			src, start := record.Source()
			if cmd.Flags().Changed("offset") {
				start = offset
			} else if a.cfg.Decode.Offset > 0 {
				start = a.cfg.Decode.Offset
			}

			recv := ir.NewReceiver(a.registry, a.log())
			res, err := decodeWith(recv, protocol, src, start, bits, strict, scan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"protocol=%s value=%#x address=%#x command=%#x bits=%d repeat=%t\n",
				res.Protocol, res.Value, res.Address, res.Command, res.Bits, res.Repeat)
			return nil
		},
	}
	cmd.Flags().StringVarP(&protocol, "protocol", "p", "", "protocol name, or \"any\"")
	cmd.Flags().IntVarP(&bits, "bits", "n", 0, "expected payload width")
	cmd.Flags().IntVar(&offset, "offset", 0, "first sample to decode from")
	cmd.Flags().BoolVar(&strict, "strict", false, "require the protocol's canonical width")
	cmd.Flags().BoolVar(&scan, "scan", false, "retry at later offsets until a decode succeeds")
	cmd.Flags().StringVarP(&format, "format", "f", "", "record format")
	return cmd
}

func decodeWith(recv *ir.Receiver, protocol string, src timing.Source, offset, bits int, strict, scan bool) (ir.Result, error) {
	var (
		res ir.Result
		err error
	)
	switch {
	case protocol == anyProtocol && scan:
		res, _, err = recv.ScanAny(src, offset)
	case protocol == anyProtocol:
		res, err = recv.DecodeAny(src, offset)
	case scan:
		res, _, err = recv.Scan(protocol, src, offset, bits, strict)
	default:
		res, err = recv.Decode(protocol, src, offset, bits, strict)
	}
	return res, err
}

func newConvertCmd(a *app) *cobra.Command {
	var from, to, out string
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Rewrite a pulse record in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(args[0])
			if err != nil {
				return err
			}
			in, err := a.codec(from)
			if err != nil {
				return err
			}
			record, err := in.Decode(b)
			if err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			target, err := a.codec(to)
			if err != nil {
				return err
			}
			b, err = target.Encode(record)
			if err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
			return writeOutput(cmd, out, b)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "input format")
	cmd.Flags().StringVar(&to, "to", "json", "output format")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output path")
	return cmd
}

func newProtocolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List registered protocols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.registry.Names() {
				p, _ := a.registry.Get(name)
				khz, duty := p.Carrier()
				fmt.Fprintf(cmd.OutOrStdout(), "%s bits=%d carrier=%dkHz duty=%d%%\n",
					name, p.DefaultBits(), khz, duty)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or validate a config file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate PATH",
		Short: "Validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated config at %s\n", args[0])
			return nil
		},
	}
	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

// pick returns the flag value when set, otherwise the configured default.
func pick(cmd *cobra.Command, name, flagValue, configured string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configured
}
