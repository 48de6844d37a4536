// Command chat runs the chat API server.
package main

import (
	"fmt"
	"log"

	"github.com/aussiebroadwan/bartabchat/internal/chat/app"
)

func main() {
	log.SetPrefix("chat-service: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize chat service: %w", err)
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("chat service stopped: %w", err)
	}
	return nil
}
