// Package repository defines the report store interface and errors.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxReports bounds how many reports are kept; the oldest is evicted
// first. Values below 1 are ignored.
func WithMaxReports(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxReports = n
		}
	}
}
