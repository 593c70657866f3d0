package main

import (
	"flag"
	"log"

	"github.com/esimov/snowfall/http"
	"github.com/esimov/snowfall/snowfall"
)

func main() {
	cfg, err := snowfall.ConfigFromEnv()
	if err != nil {
		log.Fatalln(err)
	}
	p := http.DefaultParams()
	flag.StringVar(&p.Address, "a", p.Address, "address to serve(host:port)")
	flag.StringVar(&p.Prefix, "p", p.Prefix, "prefix path under")
	flag.StringVar(&p.Root, "r", p.Root, "root path to serve")
	snowfall.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()

	if err := cfg.Validate(); cfg.Enabled && err != nil {
		log.Fatalln(err)
	}
	http.InitServer(p, cfg)
}
