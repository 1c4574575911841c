package announcer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps messages in order", func(t *testing.T) {
		// Given: an empty buffer
		buf := NewBuffer()

		// When: two messages are announced
		buf.Say(ctx, "first")
		buf.Say(ctx, "second")

		// Then: both are kept in order
		assert.Equal(t, []string{"first", "second"}, buf.Messages())
		assert.Equal(t, "first\nsecond", buf.String())
	})

	t.Run("Messages returns a copy", func(t *testing.T) {
		// Given: a buffer with one message
		buf := NewBuffer()
		buf.Say(ctx, "hello")

		// When: the returned slice is modified
		messages := buf.Messages()
		messages[0] = "changed"

		// Then: the buffer is unaffected
		assert.Equal(t, []string{"hello"}, buf.Messages())
	})

	t.Run("Reset drops everything", func(t *testing.T) {
		// Given: a buffer with a message
		buf := NewBuffer()
		buf.Say(ctx, "hello")

		// When: it is reset
		buf.Reset()

		// Then: it is empty
		assert.Empty(t, buf.Messages())
	})
}

func TestLogger(t *testing.T) {
	// Given: a logger writing JSON into a buffer
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	ann := NewLogger(logger)

	// When: a message is announced
	ann.Say(context.Background(), "You already own the Electric Company!")

	// Then: it is logged as an info record tagged with the component
	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "You already own the Electric Company!", record["msg"])
	assert.Equal(t, "announcer", record["component"])
}

func TestMulti(t *testing.T) {
	// Given: two buffers behind one announcer
	a, b := NewBuffer(), NewBuffer()
	multi := Multi{a, b}

	// When: a message is announced
	multi.Say(context.Background(), "hello")

	// Then: both buffers received it
	assert.Equal(t, []string{"hello"}, a.Messages())
	assert.Equal(t, []string{"hello"}, b.Messages())
}
