package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"jualsampah/internal/app"
	"jualsampah/internal/config"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Store, broker, services and routes ---
	server, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer server.Close()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Fiber.Listen(cfg.AppPort); err != nil {
			log.Printf("Server stopped: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := server.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
