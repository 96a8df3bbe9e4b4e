package mq

import (
	"context"
	"encoding/json"
	"log"

	"flexwage/models"
	"flexwage/rdx"
)

// Emit publishes indexing events to Redis instead of running them inline.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), "indexing-events", data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartIndexingWorker drains the indexing-events channel and records the most
// recent event per entity so the admin surface can inspect write activity.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, "indexing-events")
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}
		if err := rdx.RdxHset("index:latest", event.EntityType+":"+event.EntityId, msg.Payload); err != nil {
			log.Printf("[IndexingWorker] Failed to record event: %v", err)
		}
	}
}
