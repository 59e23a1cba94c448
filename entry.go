package xtail

import (
	"fmt"
	"time"
)

// Entry is one recorded log occurrence. Every field is fixed at
// construction; Stack is attached at most once, by the facade, before the
// entry is published to history, sink, or observers.
type Entry struct {
	Level        Level
	Message      string
	CallerClass  string
	CallerMethod string
	Line         int
	At           time.Time
	Stack        string
}

// messageText renders the text representation of a message value.
// A nil value becomes the literal text "null".
func messageText(v any) string {
	switch m := v.(type) {
	case nil:
		return "null"
	case string:
		return m
	default:
		return fmt.Sprint(v)
	}
}

// Summary renders "[CallerClass] Message".
func (e Entry) Summary() string {
	return "[" + e.CallerClass + "] " + e.Message
}

// Detail renders
// "[HH:mm:ss] [LEVEL] [CallerClass.CallerMethod:Line] Message".
func (e Entry) Detail() string {
	return fmt.Sprintf("[%s] [%s] [%s.%s:%d] %s",
		e.At.Format("15:04:05"), e.Level, e.CallerClass, e.CallerMethod, e.Line, e.Message)
}

// Color is the display color of the entry's severity.
func (e Entry) Color() Color { return e.Level.Color() }
