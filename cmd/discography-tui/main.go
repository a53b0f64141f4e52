package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/discography-sync/internal/config"
	"github.com/handiism/discography-sync/internal/tui"
)

func main() {
	configFlag := flag.String("config", "discography.yaml", "Path to config file")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	settings.ApplyEnv(os.LookupEnv)

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
