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

	"github.com/restaurant-locator/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

// Публикует тестовую пачку мест в stream:places:ingest и ждёт, пока воркер её подтвердит
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	group := flag.String("group", "place-ingest-workers", "Consumer group of the ingest worker")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое место (Times Square)
	event := domain.PlacesIngestEvent{
		BatchID:     uuid.New(),
		RequestedAt: time.Now().UTC(),
		Places: []*domain.Place{
			{
				ExternalPlaceID:        "test-" + uuid.NewString(),
				Name:                   "Test Diner",
				Latitude:               ptr(40.758),
				Longitude:              ptr(-73.9855),
				FormattedAddress:       "1560 Broadway, New York, NY 10036, USA",
				PrimaryTypeDisplayName: "Diner",
				Rating:                 ptr(4.3),
				UserRatingCount:        128,
				PriceLevel:             ptr(2),
				Takeout:                true,
				DineIn:                 true,
				Reviews: []domain.Review{
					{Author: "Anonymous", Text: ptr("Great pancakes"), Rating: ptr(5.0)},
				},
				Photos: []domain.PhotoRef{
					{Name: "places/test/photos/1", WidthPx: 1024, HeightPx: 768},
				},
			},
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamPlacesIngest,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamPlacesIngest)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Batch ID: %s\n", event.BatchID)
	fmt.Printf("   Place: %s (%s)\n", event.Places[0].Name, event.Places[0].ExternalPlaceID)

	fmt.Printf("\nWaiting for group %q to ack the message...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for the worker")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamPlacesIngest).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group {
					continue
				}
				if g.LastDeliveredID == result && g.Pending == 0 {
					fmt.Println("Message processed and acked")
					return
				}
			}
		}
	}
}
