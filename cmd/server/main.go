// Package main implements the entry point for the tenslab-api server,
// which powers the TENS virtual lab: the stimulation/tissue-risk
// simulation engine plus persistence for user-authored tissue
// configurations.
package main

import (
	"context"
	"log"
	"log/slog"
)

// main is the entry point for the tenslab-api server.
// It initializes configuration, logging and the database connection,
// applies pending schema migrations, injects dependencies and starts the
// HTTP server.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		slog.Error("server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server failed: %v", err)
	}
}
