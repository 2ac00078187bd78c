//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ViewWarmupEvent - тот же формат, что читает cmd/worker
type ViewWarmupEvent struct {
	RequestID      uuid.UUID `json:"request_id"`
	Kind           string    `json:"kind"`
	DatasetVersion string    `json:"dataset_version,omitempty"`
}

const stream = "stream:views:warmup"

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	kind := flag.String("kind", "threshold-map", "view key to warm up (e.g. counter-map, period-week)")
	version := flag.String("version", "", "dataset version; empty means the one loaded by the worker")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := ViewWarmupEvent{
		RequestID:      uuid.New(),
		Kind:           *kind,
		DatasetVersion: *version,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: %s\n", stream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   View: %s\n", event.Kind)

	// Ожидание записи в кеше: view:<version>:<kind>
	pattern := fmt.Sprintf("view:*:%s", *kind)
	if *version != "" {
		pattern = fmt.Sprintf("view:%s:%s", *version, *kind)
	}
	fmt.Printf("\n⏳ Waiting for %s...\n", pattern)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for cached view")
			return
		case <-ticker.C:
			keys, _, err := client.Scan(ctx, 0, pattern, 100).Result()
			if err != nil || len(keys) == 0 {
				continue
			}

			ttl, _ := client.TTL(ctx, keys[0]).Result()
			size, _ := client.StrLen(ctx, keys[0]).Result()
			fmt.Printf("✅ View cached: %s (%d bytes, ttl %s)\n", keys[0], size, ttl)
			return
		}
	}
}
