package server

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/df07/fermion/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent log messages of one render for polling clients
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	dropped  int // messages evicted from the front
	limit    int
}

// NewConsole creates a console that retains at most limit messages
func NewConsole(limit int) *Console {
	if limit <= 0 {
		limit = 100
	}
	return &Console{limit: limit}
}

// Append records a message
func (c *Console) Append(level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	})
	if over := len(c.messages) - c.limit; over > 0 {
		c.messages = append([]ConsoleMessage(nil), c.messages[over:]...)
		c.dropped += over
	}
}

// Since returns the retained messages with sequence number >= cursor and the
// cursor to pass on the next call
func (c *Console) Since(cursor int) ([]ConsoleMessage, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := max(cursor-c.dropped, 0)
	next := c.dropped + len(c.messages)
	if start >= len(c.messages) {
		return []ConsoleMessage{}, next
	}
	return append([]ConsoleMessage(nil), c.messages[start:]...), next
}

// WebLogger implements core.Logger by writing to the server log and a render's console
type WebLogger struct {
	renderID string
	console  *Console
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, console *Console) core.Logger {
	return &WebLogger{
		renderID: renderID,
		console:  console,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.console != nil {
		wl.console.Append("info", message)
	}
}
