package xtail

// Sink is the output backend Strategy. It receives each emitted entry
// after the entry is appended to history. Implementations must be safe
// for concurrent use; write failures stay inside the sink and never
// surface to the logging caller.
type Sink interface {
	Write(e Entry)
}
