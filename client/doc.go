// Package client provides a Go client for the pasty paste service
// (https://github.com/lus/pasty), API v2.
//
// # Installation
//
//	go get github.com/tombowditch/pasty-go/client
//
// # Quick Start
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/tombowditch/pasty-go/client"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		c, err := client.New(client.DefaultBaseURL)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Create a paste. Keep the modification token, it is returned only once.
//		created, err := c.CreatePaste(ctx, "Hello, World!", nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("ID:", created.ID)
//
//		// Retrieve it
//		p, err := c.Paste(ctx, created.ID)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("Content:", p.Content)
//	}
//
// # Modifying Pastes
//
// Update and delete need the modification token. Authenticate returns an
// AuthenticatedClient carrying it; reads stay available through Inner:
//
//	auth := c.Authenticate(created.ModificationToken)
//	err = auth.UpdatePaste(ctx, created.ID, "new content", nil)
//	p, err = auth.Inner().Paste(ctx, created.ID)
//	err = auth.DeletePaste(ctx, created.ID)
//
// # Custom Configuration
//
//	c, err := client.New("https://paste.example.com",
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("my-tool/1.0"),
//	)
//
// No timeout is enforced unless WithTimeout is given; bound requests with
// the context instead.
//
// # Error Handling
//
//	p, err := c.Paste(ctx, "abc123")
//	if client.IsNotFound(err) {
//		// Paste expired or doesn't exist
//	}
//	if client.IsUnauthorized(err) {
//		// Wrong modification token
//	}
//
// Other failures carry ErrNetwork, ErrMalformed or ErrServer in
// (*Error).Code; ErrServer errors keep the status code and raw body.
package client
