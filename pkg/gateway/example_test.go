package gateway_test

import (
	"context"
	"fmt"
	"log"

	"github.com/eludris-community/eludris-go/pkg/gateway"
	"github.com/eludris-community/eludris-go/pkg/rest"
)

func ExampleClient() {
	client, err := gateway.New(gateway.Config{Token: "my-token"})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	stream, err := client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			break
		}
		if msg, ok := ev.(gateway.MessageEvent); ok {
			fmt.Printf("<%s> %s\n", msg.Message.Author, msg.Message.Content)
		}
	}
}

func ExampleClient_pingBot() {
	ctx := context.Background()

	// Discover the gateway from the instance's metadata and reply to !ping.
	httpClient := rest.New(rest.Config{Name: "Uwuki"})
	client, err := httpClient.CreateGateway(ctx, "my-token")
	if err != nil {
		log.Fatal(err)
	}

	stream, err := client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			break
		}
		msg, ok := ev.(gateway.MessageEvent)
		if !ok {
			continue
		}
		if msg.Message.Content == "!ping" {
			if _, err := httpClient.Send(ctx, "Pong"); err != nil {
				log.Printf("failed to reply: %v", err)
			}
		}
	}
}
