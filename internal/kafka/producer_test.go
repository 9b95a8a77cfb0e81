package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer("localhost:9092", "task-events")
	t.Cleanup(func() { p.Close() })

	require.NotNil(t, p.writer)
	assert.Equal(t, "task-events", p.writer.Topic)
	assert.Equal(t, "localhost:9092", p.writer.Addr.String())
	assert.True(t, p.writer.AllowAutoTopicCreation)
	assert.False(t, p.writer.Async, "publish errors must reach the caller")
	assert.Equal(t, batchTimeout, p.writer.BatchTimeout)
	assert.LessOrEqual(t, p.writer.BatchTimeout.Milliseconds(), int64(50))
}
