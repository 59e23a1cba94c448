package xtail

import (
	"fmt"
	"strings"
)

// Level classifies entries by severity. The order is total:
// Debug < Info < Warning < Error < Fatal.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

var levelNames = [...]string{"DEBUG", "INFO", "WARNING", "ERROR", "FATAL"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelFatal {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// Visible reports whether entries at level l pass the minimum-visibility
// threshold min.
func (l Level) Visible(min Level) bool { return l >= min }

// ParseLevel maps a case-insensitive level name to its Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return LevelDebug, fmt.Errorf("xtail: unknown level %q", s)
}
