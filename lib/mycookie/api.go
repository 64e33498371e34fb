package mycookie

import "time"

// Jar abstracts the browser cookie round-trip so that session logic can be
// tested without a real request/response pair.
type Jar interface {
	Get(name string) (string, bool)
	Set(name string, value string, maxAge time.Duration)
	Delete(name string)
}
