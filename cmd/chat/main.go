// Package main provides a command-line chat client for Eludris instances.
// It connects to an instance's gateway, prints incoming events, and sends
// lines read from stdin as messages.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/eludris-community/eludris-go/pkg/gateway"
	"github.com/eludris-community/eludris-go/pkg/logger"
	"github.com/eludris-community/eludris-go/pkg/rest"
)

// getToken resolves the gateway token from the -token flag or the
// ELUDRIS_TOKEN environment variable.
func getToken(flagToken string) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if token := os.Getenv("ELUDRIS_TOKEN"); token != "" {
		return token, nil
	}
	return "", errors.New("token required: -token flag or ELUDRIS_TOKEN env var")
}

func run() error {
	var (
		restURL    = flag.String("url", rest.DefaultURL, "instance REST URL")
		gatewayURL = flag.String("gateway", "", "override the gateway URL (skips the metadata fetch)")
		token      = flag.String("token", "", "gateway token")
		name       = flag.String("name", "", "author name for sent messages")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if *name == "" {
		return errors.New("name required: -name")
	}
	tok, err := getToken(*token)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.New(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpClient := rest.New(rest.Config{Logger: log, URL: *restURL, Name: *name})

	var gw *gateway.Client
	if *gatewayURL != "" {
		gw, err = gateway.New(gateway.Config{Logger: log, URL: *gatewayURL, Token: tok})
	} else {
		gw, err = httpClient.CreateGateway(ctx, tok)
	}
	if err != nil {
		return err
	}

	log.Info("connecting to gateway", "url", gw.URL())
	stream, err := gw.Connect(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	// Send stdin lines as messages while the event loop runs.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if _, err := httpClient.Send(ctx, line); err != nil {
				log.Error("failed to send message", "error", err)
			}
		}
	}()

	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, gateway.ErrStreamClosed) {
				log.Info("shutting down")
				return nil
			}
			return err
		}

		switch ev := ev.(type) {
		case gateway.AuthenticatedEvent:
			log.Info("authenticated")
		case gateway.MessageEvent:
			fmt.Printf("<%s> %s\n", ev.Message.Author, ev.Message.Content)
		case gateway.UserUpdateEvent:
			log.Info("user updated", "user", ev.User.Username, "id", ev.User.ID)
		case gateway.PresenceUpdateEvent:
			log.Info("presence updated", "user_id", ev.UserID, "status", ev.Status.Type)
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chat: %v\n", err)
		os.Exit(1)
	}
}
