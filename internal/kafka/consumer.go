package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(broker, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{broker},
			Topic:   topic,
			GroupID: groupID,
		}),
	}
}

// Next blocks until a message arrives or ctx is done. Messages that are not
// task events are returned as a raw line.
func (c *Consumer) Next(ctx context.Context) (string, error) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return "", err
	}
	return FormatMessage(m.Value), nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// FormatMessage renders one event as a log line.
func FormatMessage(value []byte) string {
	var ev models.TaskEvent
	if err := json.Unmarshal(value, &ev); err != nil || ev.Action == "" {
		return "raw " + string(value)
	}
	return fmt.Sprintf("[%s] %s task %d %q completed=%t (event %s)",
		ev.At.Format(time.RFC3339), ev.Action, ev.Task.ID, ev.Task.Title, ev.Task.Completed, ev.ID)
}
