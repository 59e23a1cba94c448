package xtail

import "github.com/google/uuid"

// Facade helpers using the global Singleton logger.
// Usage: xtail.Info("engine started")
//
// These call the unexported workers directly so the call-site resolution
// stays at the same stack depth as the Logger methods.

func Debug(v any)   { L().log(LevelDebug, v) }
func Info(v any)    { L().log(LevelInfo, v) }
func Warning(v any) { L().log(LevelWarning, v) }
func Error(v any)   { L().log(LevelError, v) }
func Fatal(v any)   { L().log(LevelFatal, v) }

func Debugf(format string, args ...any)   { L().logf(LevelDebug, format, args) }
func Infof(format string, args ...any)    { L().logf(LevelInfo, format, args) }
func Warningf(format string, args ...any) { L().logf(LevelWarning, format, args) }
func Errorf(format string, args ...any)   { L().logf(LevelError, format, args) }
func Fatalf(format string, args ...any)   { L().logf(LevelFatal, format, args) }

// Exception records err at Error severity with a stack trace attached.
func Exception(err error) { L().logException(err) }

// History returns a snapshot of the global logger's retained entries.
func History() []Entry { return L().History() }

// HistoryLen reports the global logger's retained entry count.
func HistoryLen() int { return L().HistoryLen() }

// Clear empties the global logger's history.
func Clear() { L().Clear() }

// Dump renders the global logger's history, one detailed line per entry.
func Dump() string { return L().Dump() }

// Subscribe registers an observer on the global logger.
func Subscribe(o Observer) uuid.UUID { return L().Subscribe(o) }

// SubscribeFunc registers a plain function observer on the global logger.
func SubscribeFunc(f func(Entry)) uuid.UUID { return L().SubscribeFunc(f) }

// Unsubscribe removes a registration from the global logger.
func Unsubscribe(token uuid.UUID) { L().Unsubscribe(token) }

// ProductionMode reports the global logger's production flag.
func ProductionMode() bool { return L().ProductionMode() }

// SetProduction overrides the global logger's production flag.
func SetProduction(on bool) { L().SetProduction(on) }
