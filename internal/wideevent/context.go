// Package wideevent accumulates structured diagnostics across one
// resolution cycle and emits them as a single record at the end.
package wideevent

// Mergeable is implemented by values that can combine two partial views
// of the same logical event. Merge returns the combined value; fields
// present in other win over fields already accumulated.
type Mergeable interface {
	Merge(other Mergeable) Mergeable
}

// Context holds the key/value entries accumulated during one cycle.
// It is confined to the goroutine running that cycle and is not safe
// for concurrent use.
type Context struct {
	entries map[string]any
}

// New returns an empty context.
func New() *Context {
	return &Context{entries: make(map[string]any)}
}

// Enrich stores value under key. When an entry already exists and both
// it and value are mergeable, the entry is replaced by the merge result;
// otherwise value overwrites the entry.
func (c *Context) Enrich(key string, value Mergeable) {
	if existing, ok := c.entries[key].(Mergeable); ok {
		c.entries[key] = existing.Merge(value)
		return
	}
	c.entries[key] = value
}

// Put stores value under key without merging.
func (c *Context) Put(key string, value any) {
	c.entries[key] = value
}

// Get returns the entry under key, or nil when absent.
func (c *Context) Get(key string) any {
	return c.entries[key]
}

// Snapshot returns a copy of all entries.
func (c *Context) Snapshot() map[string]any {
	snapshot := make(map[string]any, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	return snapshot
}

// Clear discards all entries.
func (c *Context) Clear() {
	c.entries = make(map[string]any)
}
