package wideevent

// Run executes fn with a fresh context and guarantees that the
// accumulated entries are flushed to sink exactly once and then cleared,
// on normal return, on error, and during a panic unwind.
func Run(sink Sink, operation string, fn func(ec *Context) error) error {
	ec := New()
	defer func() {
		if snapshot := ec.Snapshot(); len(snapshot) > 0 {
			sink.Emit(operation, snapshot)
		}
		ec.Clear()
	}()
	return fn(ec)
}
