package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/danmuck/fusionctl/internal/config"
	"github.com/danmuck/fusionctl/internal/logging"
)

type appState struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newApp() *cli.App {
	state := &appState{}
	return &cli.App{
		Name:  "fusionctl",
		Usage: "encode and decode navigation device control messages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to the toml config file",
				EnvVars:     []string{"FUSIONCTL_CONFIG"},
				Value:       config.DefaultPath,
				Destination: &state.configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log verbosity: trace, debug, info, warn, error, off",
				EnvVars:     []string{logging.EnvLogLevel},
				Destination: &state.logLevel,
			},
		},
		Before: state.before,
		Commands: []*cli.Command{
			typesCmd(),
			encodeCmd(state),
			decodeCmd(state),
			configCmd(state),
		},
	}
}

func (s *appState) before(c *cli.Context) error {
	if c.Args().First() == "config" {
		s.cfg = config.DefaultConfig()
	} else {
		cfg, err := config.LoadOrDefault(s.configPath)
		if err != nil {
			return err
		}
		s.cfg = cfg
	}

	logCfg := logging.Resolve(logging.ProfileRuntime)
	logCfg.Out = c.App.ErrWriter
	if lvl, ok := logging.ParseLevel(s.cfg.LogLevel); ok {
		logCfg.Level = lvl
	}
	if c.IsSet("log-level") {
		lvl, ok := logging.ParseLevel(s.logLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", s.logLevel)
		}
		logCfg.Level = lvl
	}
	logger := logging.Apply(logCfg)
	logger.Debug().
		Str("config", s.configPath).
		Str("output", s.cfg.Output).
		Str("level", logCfg.Level.String()).
		Msg("fusionctl configured")
	return nil
}

func (s *appState) format(b []byte) string {
	if s.cfg.Output == config.OutputSpaced {
		return fmt.Sprintf("% X", b)
	}
	return hex.EncodeToString(b)
}
