// Command watch opens a WebSocket subscription and prints every frame the
// node sends, until interrupted.
package main

import (
	"flag"
	"log"

	"github.com/zlc-labs/lattice-go/client"
)

func main() {
	endpoint := flag.String("endpoint", "ws://127.0.0.1:8546", "WebSocket endpoint")
	channel := flag.String("channel", "newTBlock", "subscribe channel: monitorData, newTBlock, or newDBlock")
	flag.Parse()

	sub, err := client.SubscribeWS(*endpoint, *channel)
	if err != nil {
		log.Fatalf("subscribe %s on %s: %v", *channel, *endpoint, err)
	}
	defer sub.Close()

	log.Printf("watching %q on %s ...", *channel, *endpoint)
	for {
		select {
		case msg, ok := <-sub.Messages:
			if !ok {
				if err := <-sub.Errors; err != nil {
					log.Fatalf("subscription closed: %v", err)
				}
				return
			}
			log.Printf("%s", msg)
		case err := <-sub.Errors:
			log.Fatalf("subscription error: %v", err)
		}
	}
}
