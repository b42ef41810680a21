package main

import (
	"flag"
	"log"

	"studiopulse/ui"
)

func main() {
	port := flag.String("port", "8081", "port to serve the demo dashboard on")
	seed := flag.Int64("seed", 42, "seed for the synthetic client book")
	clients := flag.Int("clients", 200, "number of synthetic clients to generate")
	flag.Parse()

	app, err := ui.NewApp(ui.AppConfig{
		Port:       *port,
		Seed:       *seed,
		ClientBook: *clients,
	})
	if err != nil {
		log.Fatal("Failed to create demo app:", err)
	}

	log.Printf("Starting StudioPulse demo on http://localhost:%s (%d synthetic clients)", *port, *clients)
	log.Fatal(app.Start())
}
