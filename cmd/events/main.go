// Command events prints ranking domain events from NATS as they arrive.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"boardgame-ranking-be/internal/config"
	"boardgame-ranking-be/pkg/events"
	pktNats "boardgame-ranking-be/pkg/nats"

	"github.com/fatih/color"
)

var typeColors = map[string]*color.Color{
	events.RankingSessionStarted: color.New(color.FgCyan),
	events.RankingCompleted:      color.New(color.FgGreen, color.Bold),
	events.RankingReordered:      color.New(color.FgBlue),
	events.RankingDeadEnd:        color.New(color.FgYellow),
}

func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cc, err := sub.Subscribe(ctx, pktNats.AllSubjects, "", func(ctx context.Context, event events.Event) error {
		printEvent(event)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer cc.Stop()

	fmt.Println("Listening for ranking events, Ctrl+C to stop")
	<-ctx.Done()
}

func printEvent(event events.Event) {
	c, ok := typeColors[event.EventType()]
	if !ok {
		c = color.New(color.FgWhite)
	}
	c.Printf("%s %-24s", event.Timestamp().Format("15:04:05"), event.EventType())

	payload := event.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf(" %s=%v", k, payload[k])
	}
	fmt.Println()
}
