package announcer

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/crevelings/monopoly-backend/internal/entity"
)

// Buffer keeps every message in memory.
type Buffer struct {
	mu       sync.Mutex
	messages []string
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (that *Buffer) Say(_ context.Context, message string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages = append(that.messages, message)
}

func (that *Buffer) Messages() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]string(nil), that.messages...)
}

// String joins all messages with newlines.
func (that *Buffer) String() string {
	return strings.Join(that.Messages(), "\n")
}

func (that *Buffer) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages = nil
}

// Logger writes each message as an info record.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger.With("component", "announcer")}
}

func (that *Logger) Say(ctx context.Context, message string) {
	that.logger.InfoContext(ctx, message)
}

// Multi fans every message out to all of its announcers.
type Multi []entity.Announcer

func (that Multi) Say(ctx context.Context, message string) {
	for _, a := range that {
		a.Say(ctx, message)
	}
}
