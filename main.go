package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/esimov/snowfall/snowfall"
	"github.com/esimov/snowfall/terminal"
)

func main() {
	cfg, err := snowfall.ConfigFromEnv()
	if err != nil {
		log.Fatalln(err)
	}
	fps := flag.Int("fps", 30, "frames per second")
	snowfall.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()

	if err := cfg.Validate(); cfg.Enabled && err != nil {
		log.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term := terminal.New(cfg, *fps)
	if err := term.Render(ctx); err != nil && ctx.Err() == nil {
		log.Fatalln(err)
	}
}
