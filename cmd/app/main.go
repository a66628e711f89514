package main

import (
	"flag"
	"log"
	"os"

	"github.com/andreyxaxa/hr-outbox/config"
	"github.com/andreyxaxa/hr-outbox/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file loaded into the environment when it exists")
	flag.Parse()

	// Config
	if _, err := os.Stat(*envFile); err == nil {
		if err = godotenv.Load(*envFile); err != nil {
			log.Fatalf("config error: load %s: %s", *envFile, err)
		}
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config error: %s", err)
	}

	// Run: blocks until SIGINT/SIGTERM or HTTP server failure
	app.Run(cfg)
}
