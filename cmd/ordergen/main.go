// Command ordergen pushes sample JSON orders onto the intake topic, which is
// useful for exercising the queue-side order processor without the web tier.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront-service/internal/domain/models"
)

func main() {
	var (
		brokers   = flag.String("brokers", "localhost:9092", "Kafka broker address")
		topic     = flag.String("topic", "orders", "Topic to send orders to")
		count     = flag.Int("count", 10, "Number of orders to generate")
		interval  = flag.Int("interval", 1000, "Interval between orders in milliseconds")
		printOnly = flag.Bool("print-only", false, "Only print orders, don't send them")
	)
	flag.Parse()

	var writer *kafka.Writer
	if !*printOnly {
		writer = &kafka.Writer{
			Addr:                   kafka.TCP(*brokers),
			Topic:                  *topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("Error closing writer: %v", err)
			}
		}()

		fmt.Printf("Connected to Kafka at %s\n", *brokers)
	}

	pause := time.Duration(*interval) * time.Millisecond
	fmt.Printf("Generating %d orders with %v interval\n", *count, pause)

	for i := 0; i < *count; i++ {
		order := sampleOrder(i)

		payload, err := json.Marshal(order)
		if err != nil {
			log.Printf("Error marshaling order to JSON: %v", err)
			continue
		}

		if *printOnly {
			fmt.Printf("Order %d: %s\n", i+1, string(payload))
		} else {
			err = writer.WriteMessages(context.Background(), kafka.Message{Value: payload})
			if err != nil {
				log.Printf("Error sending message: %v", err)
			} else {
				fmt.Printf("Order %d sent: %s\n", i+1, string(payload))
			}
		}

		if i < *count-1 && pause > 0 {
			time.Sleep(pause)
		}
	}

	fmt.Println("Order generation completed")
}

// sampleOrder carries no identity: the consumer assigns the partition and row
// keys itself and ignores anything the payload claims.
func sampleOrder(i int) models.Order {
	quantity := i%5 + 1
	unitPrice := 9.99
	return models.Order{
		CustomerRowKey: fmt.Sprintf("customer-%d", i%3),
		CustomerName:   fmt.Sprintf("Load Customer %d", i%3),
		ProductRowKey:  fmt.Sprintf("product-%d", i%4),
		ProductName:    fmt.Sprintf("Load Product %d", i%4),
		UnitPrice:      unitPrice,
		Quantity:       quantity,
		TotalPrice:     float64(quantity) * unitPrice,
		OrderDate:      time.Now().UTC(),
	}
}
