// Package gateway provides a persistent, self-healing connection to an
// Eludris gateway, exposing the server's pushed payloads as a pull-based
// stream of typed events.
//
// The stream handles:
//   - The hello/authenticate handshake
//   - Jittered heartbeats to keep the connection open
//   - Automatic reconnection with capped exponential backoff
//   - A per-session user cache used to enrich update events
//
// Basic usage:
//
//	client, err := gateway.New(gateway.Config{Token: "my-token"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := client.Connect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for {
//	    ev, err := stream.Next(ctx)
//	    if err != nil {
//	        break
//	    }
//	    if msg, ok := ev.(gateway.MessageEvent); ok {
//	        fmt.Printf("<%s> %s\n", msg.Message.Author, msg.Message.Content)
//	    }
//	}
//
// Only the initial Connect can fail. After that, a dropped socket pauses the
// stream while it reconnects; the consumer never sees an error for it.
package gateway
