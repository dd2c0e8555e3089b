package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/fusionctl/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logging.ConfigureRuntime()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("fusionctl failed")
		os.Exit(1)
	}
}
