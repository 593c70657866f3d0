package main

import (
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/esimov/snowfall/desktop/overlay"
	"github.com/esimov/snowfall/snowfall"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := snowfall.ConfigFromEnv()
	if err != nil {
		log.Fatalln(err)
	}
	snowfall.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()

	if !cfg.Enabled {
		log.Println("snowfall disabled")
		return
	}
	w, h := ebiten.Monitor().Size()
	o, err := overlay.New(cfg, w, h)
	if err != nil {
		log.Fatalln(err)
	}
	ebiten.SetTPS(60)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		o.Stop()
	}()

	if err := o.Run("snowfall"); err != nil {
		log.Fatalln(err)
	}
}
