package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tansudb/tansu/internal/api"
	"github.com/tansudb/tansu/internal/config"
)

func main() {
	var (
		confPath = flag.String("conf", "", "Path to the YAML configuration file")
		port     = flag.String("port", "", "Port to run the server on (overrides the configuration file)")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		fmt.Println("tansu-server - versioned key-value store server")
		fmt.Println("\nUsage:")
		fmt.Println("  tansu-server [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	conf := config.Default()
	if *confPath != "" {
		loaded, err := config.Load(*confPath)
		if err != nil {
			log.Fatalf("Failed to load configuration from %s: %v", *confPath, err)
		}
		conf = loaded
	}
	if *port != "" {
		conf.Server.Port = *port
	}

	server := api.NewServer(conf)
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
