package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Awais417/passwordreset/internal/config"
	"github.com/Awais417/passwordreset/internal/portal"
)

const version = "0.1.0"

func initializePortal(configPath string) (http.Handler, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	portal, err := portal.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	return portal.Routes(), cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Local development overrides; missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	log.Printf("Starting premium portal v%s with config: %s", version, *configPath)

	handler, cfg, err := initializePortal(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Get port from environment variable, fallback to config file
	port := os.Getenv("PORTAL_PORT")
	if port == "" {
		port = strconv.Itoa(cfg.Port)
	}

	log.Printf("Starting portal server on 0.0.0.0:%s", port)
	if err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%s", port), handler); err != nil {
		log.Fatalf("could not start server: %v", err)
	}
}
