package server

import (
	"fmt"
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-123", console)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	messages, next := console.Since(0)
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	expectedMessage := testMessage + "\n"
	if msg.Message != expectedMessage {
		t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
	if next != 1 {
		t.Errorf("Expected next cursor 1, got %d", next)
	}
}

func TestWebLogger_FormattedMessage(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-789", console)

	logger.Printf("Rendering %dx%d with %d workers\n", 400, 225, 8)

	messages, _ := console.Since(0)
	expected := "Rendering 400x225 with 8 workers\n"
	if len(messages) != 1 || messages[0].Message != expected {
		t.Errorf("Expected message '%s', got %+v", expected, messages)
	}
}

func TestWebLogger_NilConsole(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil)

	// Should not panic
	logger.Printf("Test message with nil console\n")
}

func TestConsole_Cursor(t *testing.T) {
	console := NewConsole(10)
	console.Append("info", "one")
	console.Append("warning", "two")

	messages, next := console.Since(0)
	if len(messages) != 2 || next != 2 {
		t.Fatalf("Expected 2 messages and cursor 2, got %d and %d", len(messages), next)
	}

	messages, next = console.Since(next)
	if len(messages) != 0 || next != 2 {
		t.Errorf("Expected no new messages, got %d (cursor %d)", len(messages), next)
	}

	console.Append("error", "three")
	messages, next = console.Since(2)
	if len(messages) != 1 || messages[0].Message != "three" || messages[0].Level != "error" {
		t.Errorf("Expected only the third message, got %+v", messages)
	}
	if next != 3 {
		t.Errorf("Expected cursor 3, got %d", next)
	}
}

func TestConsole_Eviction(t *testing.T) {
	console := NewConsole(3)
	for i := 0; i < 5; i++ {
		console.Append("info", fmt.Sprintf("message %d", i))
	}

	messages, next := console.Since(0)
	if len(messages) != 3 {
		t.Fatalf("Expected 3 retained messages, got %d", len(messages))
	}
	if messages[0].Message != "message 2" {
		t.Errorf("Expected oldest retained to be 'message 2', got '%s'", messages[0].Message)
	}
	if next != 5 {
		t.Errorf("Expected cursor 5, got %d", next)
	}

	messages, _ = console.Since(4)
	if len(messages) != 1 || messages[0].Message != "message 4" {
		t.Errorf("Expected only 'message 4', got %+v", messages)
	}
}
