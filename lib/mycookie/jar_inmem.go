package mycookie

import "time"

// InMemoryJar is a map-backed jar for tests: writes are immediately visible
// through Get, like a browser carrying cookies into the next request.
type InMemoryJar struct {
	Values map[string]string
}

func NewInMemoryJar() *InMemoryJar {
	return &InMemoryJar{
		Values: map[string]string{},
	}
}

func (j *InMemoryJar) Get(name string) (string, bool) {
	value, exists := j.Values[name]
	return value, exists
}

func (j *InMemoryJar) Set(name string, value string, maxAge time.Duration) {
	j.Values[name] = value
}

func (j *InMemoryJar) Delete(name string) {
	delete(j.Values, name)
}
