package xtail

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted by DetectProduction.
const (
	// EnvMode names the execution context: "production"/"release" or
	// "development"/"debug"/"editor".
	EnvMode = "XTAIL_MODE"
	// EnvProduction is a boolean override in strconv.ParseBool syntax,
	// consulted when EnvMode is unset or unrecognized.
	EnvProduction = "XTAIL_PRODUCTION"
)

// DetectProduction reports whether the process should start in production
// mode. XTAIL_MODE wins, then XTAIL_PRODUCTION; an unconfigured process is
// treated as a development context. The result is only a default: the flag
// stays settable at runtime via SetProduction.
func DetectProduction() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvMode))) {
	case "production", "release":
		return true
	case "development", "debug", "editor":
		return false
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvProduction)); err == nil {
		return v
	}
	return false
}
