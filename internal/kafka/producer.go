package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"github.com/segmentio/kafka-go"
)

// Publish runs on the request path, so a single event must not wait for
// kafka-go's default one second batch timer.
const batchTimeout = 10 * time.Millisecond

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           batchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish writes the event keyed by task id, so events for one task stay on
// one partition.
func (p *Producer) Publish(ctx context.Context, event models.TaskEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.Task.ID, 10)),
		Value: value,
		Time:  event.At,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
