package main

import (
	"encoding/hex"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/danmuck/fusionctl/internal/config"
	"github.com/danmuck/fusionctl/internal/protocol"
)

func typesCmd() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "list registered message types",
		Action: func(c *cli.Context) error {
			for _, info := range protocol.Catalog() {
				fmt.Fprintf(c.App.Writer, "%5d  0x%04X  v%d  %s\n", uint16(info.Type), uint16(info.Type), info.LatestVersion, info.Name)
			}
			return nil
		},
	}
}

func encodeCmd(s *appState) *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "encode a payload and print its bytes",
		Subcommands: []*cli.Command{
			{
				Name:  "command-response",
				Usage: "encode a command response",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "seq", Usage: "source sequence number"},
					&cli.StringFlag{Name: "response", Usage: "response name or raw code", Value: "ok"},
				},
				Action: func(c *cli.Context) error {
					seq := c.Uint("seq")
					if uint64(seq) > uint64(^uint32(0)) {
						return fmt.Errorf("seq out of range: %d", seq)
					}
					resp, err := protocol.ParseResponse(c.String("response"))
					if err != nil {
						return err
					}
					return s.emit(c, &protocol.CommandResponse{SourceSequenceNum: uint32(seq), Response: resp})
				},
			},
			{
				Name:  "message-request",
				Usage: "encode a message request",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "requested message type name or id", Required: true},
				},
				Action: func(c *cli.Context) error {
					t, err := protocol.ParseMessageType(c.String("type"))
					if err != nil {
						return err
					}
					return s.emit(c, protocol.NewMessageRequest(t))
				},
			},
			{
				Name:  "reset-request",
				Usage: "encode a reset request",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mask", Usage: "raw reset mask, decimal or 0x hex"},
					&cli.StringFlag{Name: "preset", Usage: "hot, warm, cold or factory"},
				},
				Action: func(c *cli.Context) error {
					mask, err := resetMaskFromFlags(c.String("mask"), c.String("preset"))
					if err != nil {
						return err
					}
					return s.emit(c, &protocol.ResetRequest{ResetMask: mask})
				},
			},
		},
	}
}

func resetMaskFromFlags(raw, preset string) (protocol.ResetMask, error) {
	switch {
	case raw != "" && preset != "":
		return 0, fmt.Errorf("--mask and --preset are mutually exclusive")
	case preset != "":
		m, ok := protocol.ResetPreset(preset)
		if !ok {
			return 0, fmt.Errorf("unknown reset preset %q", preset)
		}
		return m, nil
	case raw != "":
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 32)
		if err != nil {
			return 0, fmt.Errorf("parse mask: %w", err)
		}
		return protocol.ResetMask(v), nil
	default:
		return 0, fmt.Errorf("one of --mask or --preset is required")
	}
}

func (s *appState) emit(c *cli.Context, p protocol.Payload) error {
	buf, err := protocol.Marshal(p)
	if err != nil {
		return err
	}
	log.Debug().
		Str("type", p.MessageType().String()).
		Uint8("version", uint8(p.MessageVersion())).
		Int("bytes", len(buf)).
		Msg("encoded payload")
	fmt.Fprintln(c.App.Writer, s.format(buf))
	return nil
}

func decodeCmd(s *appState) *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode one or more hex payloads of the same type",
		ArgsUsage: "HEX [HEX...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "message type name or id", Required: true},
			&cli.IntFlag{Name: "offset", Usage: "payload offset inside each input (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			t, err := protocol.ParseMessageType(c.String("type"))
			if err != nil {
				return err
			}
			if c.NArg() == 0 {
				return fmt.Errorf("decode: no payloads given")
			}
			offset := s.cfg.Offset
			if c.IsSet("offset") {
				offset = c.Int("offset")
			}
			out, err := decodeAll(t, offset, c.Args().Slice())
			if err != nil {
				return err
			}
			for _, line := range out {
				fmt.Fprintln(c.App.Writer, line)
			}
			return nil
		},
	}
}

// decodeAll decodes every input into its own payload. Output order follows input order.
func decodeAll(t protocol.MessageType, offset int, inputs []string) ([]string, error) {
	out := make([]string, len(inputs))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			buf, err := parseHex(in)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			p, err := newPayload(t)
			if err != nil {
				return err
			}
			n, err := p.Decode(buf, offset)
			if err != nil {
				log.Error().Err(err).Int("input", i).Str("type", t.String()).Msg("decode failed")
				return fmt.Errorf("input %d: %w", i, err)
			}
			log.Debug().Int("input", i).Str("type", t.String()).Int("bytes", n).Msg("decoded payload")
			out[i] = p.String()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseHex(in string) ([]byte, error) {
	clean := strings.NewReplacer(" ", "", ":", "", "0x", "", "0X", "").Replace(strings.TrimSpace(in))
	buf, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return buf, nil
}

func configCmd(s *appState) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "manage the fusionctl config file",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a config template",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing config"},
				},
				Action: func(c *cli.Context) error {
					path, err := config.WriteTemplate(s.configPath, c.Bool("force"))
					if err != nil {
						return err
					}
					log.Info().Str("path", path).Msg("wrote config template")
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "load and validate the config file",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(s.configPath)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "log_level=%s output=%s offset=%d\n", cfg.LogLevel, cfg.Output, cfg.Offset)
					return nil
				},
			},
		},
	}
}
