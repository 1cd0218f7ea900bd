package server

import (
	"testing"
	"time"
)

func TestWebLogger_Printf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{"plain", "Test log message\n", nil, "Test log message\n"},
		{"formatted", "Loading %s with %d triangles...\n", []interface{}{"bunny.ply", 12345}, "Loading bunny.ply with 12345 triangles...\n"},
		{"frame timings", "  transform %v, shade %v\n", []interface{}{time.Millisecond, 2 * time.Second}, "  transform 1ms, shade 2s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 10)
			logger := NewWebLogger("test-render-"+tt.name, messageChan)
			logger.Printf(tt.format, tt.args...)

			select {
			case msg := <-messageChan:
				if msg.Message != tt.expected {
					t.Errorf("Expected message %q, got %q", tt.expected, msg.Message)
				}
				if msg.Level != "info" {
					t.Errorf("Expected level 'info', got '%s'", msg.Level)
				}
				if time.Since(msg.Timestamp) > time.Second {
					t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
				}
			case <-time.After(100 * time.Millisecond):
				t.Error("Timeout waiting for console message")
			}
		})
	}
}

func TestWebLogger_DropsWhenFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-full", messageChan)

	// Only the first message fits; the rest must not block
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	messages := drainConsole(messageChan)
	if len(messages) != 1 || messages[0].Message != "Message 1\n" {
		t.Errorf("Expected only the first message, got %+v", messages)
	}
}

func TestMessageLevel(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"Rendered 32x24 (raytrace, lit)\n", "info"},
		{"Warning: Could not parse scene config\n", "warning"},
		{"  error: tile 3 panicked\n", "error"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.expected+"/"+tt.message, func(t *testing.T) {
			if got := messageLevel(tt.message); got != tt.expected {
				t.Errorf("messageLevel(%q) = %q, want %q", tt.message, got, tt.expected)
			}
		})
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	// This should not panic
	logger := NewWebLogger("test-render-nil", nil)
	logger.Printf("Test message with nil channel\n")
}

func TestDrainConsole(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-drain", messageChan)

	logger.Printf("first\n")
	logger.Printf("second\n")

	messages := drainConsole(messageChan)
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Message != "first\n" || messages[1].Message != "second\n" {
		t.Errorf("Expected messages in order, got %q and %q", messages[0].Message, messages[1].Message)
	}
	if rest := drainConsole(messageChan); len(rest) != 0 {
		t.Errorf("Expected an empty channel, got %d messages", len(rest))
	}
}
