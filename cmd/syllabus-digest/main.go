package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/a3tai/syllabus-digest/internal/config"
	"github.com/a3tai/syllabus-digest/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

func printVersion() {
	fmt.Printf("syllabus-digest %s (built %s)\n", version, buildTime)
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	_ = godotenv.Load()

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("starting syllabus-digest %s on %s", version, cfg.Address())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		log.Printf("received signal: %s, shutting down", sig)
		cancel()
	}()

	if err := server.New(cfg).Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("server stopped")
}
