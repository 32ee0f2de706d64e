package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tansudb/tansu/internal/client"
	"github.com/tansudb/tansu/internal/shell"
)

func main() {
	var (
		addr     = flag.String("addr", "localhost:8080", "Server address")
		username = flag.String("user", "admin", "Username for login")
		password = flag.String("password", "password", "Password for login")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		fmt.Println("tansu - interactive shell for the tansu key-value store")
		fmt.Println("\nUsage:")
		fmt.Println("  tansu [options]")
		fmt.Println("\nCommands:")
		fmt.Println("  put <row> [timestamp] <value>")
		fmt.Println("  get <row>")
		fmt.Println("  delete <row> [timestamp]")
		fmt.Println("  flush [cache]")
		fmt.Println("  exit")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	c := client.New(*addr)
	if err := c.Login(*username, *password); err != nil {
		log.Fatalf("Failed to log in to %s: %v", *addr, err)
	}

	if err := shell.New(c).Run(); err != nil {
		log.Fatalf("Shell exited with error: %v", err)
	}
}
