package gpio

import (
	"fmt"
	"log"
	"sync"

	"github.com/pkg/errors"
)

// Event is one call seen by a Recorder.
type Event struct {
	Pin    int
	Output bool // true for Output(), Level is meaningless then
	Level  Level
}

func (e Event) String() string {
	if e.Output {
		return fmt.Sprintf("pin %d output", e.Pin)
	}
	return fmt.Sprintf("pin %d %v", e.Pin, e.Level)
}

// Recorder is an in-memory backend, it keeps the level of every pin and
// an audit trail of all calls.
type Recorder struct {
	mu         sync.Mutex
	levels     map[int]Level
	outputs    map[int]bool
	audit      []Event
	failPins   map[int]error
	DisableLog bool
	// Limit bounds the audit trail when > 0, older events are dropped
	Limit int
}

// NewRecorder returns a Recorder with logging off.
func NewRecorder() *Recorder {
	return &Recorder{
		levels:     make(map[int]Level),
		outputs:    make(map[int]bool),
		failPins:   make(map[int]error),
		DisableLog: true,
	}
}

// Close does nothing.
func (r *Recorder) Close() error {
	return nil
}

// Output marks pin as an output.
func (r *Recorder) Output(pin int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failPins[pin]; err != nil {
		return err
	}
	r.outputs[pin] = true
	r.record(Event{Pin: pin, Output: true})
	return nil
}

// Write records level on pin, which must be an output.
func (r *Recorder) Write(pin int, level Level) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failPins[pin]; err != nil {
		return err
	}
	if !r.outputs[pin] {
		return errors.Errorf("pin %d is not an output", pin)
	}
	r.levels[pin] = level
	r.record(Event{Pin: pin, Level: level})
	return nil
}

func (r *Recorder) record(e Event) {
	if !r.DisableLog {
		log.Printf("GPIO %v", e)
	}
	r.audit = append(r.audit, e)
	if r.Limit > 0 && len(r.audit) >= 2*r.Limit {
		r.audit = append(r.audit[:0], r.audit[len(r.audit)-r.Limit:]...)
	}
}

// Fail makes every later call on pin return err, nil clears it.
func (r *Recorder) Fail(pin int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failPins, pin)
		return
	}
	r.failPins[pin] = err
}

// Level returns the last level written to pin.
func (r *Recorder) Level(pin int) Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.levels[pin]
}

// IsOutput reports whether Output was called for pin.
func (r *Recorder) IsOutput(pin int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outputs[pin]
}

// Audit returns a copy of the calls seen so far.
func (r *Recorder) Audit() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.audit...)
}

// Reset drops the audit trail, levels are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audit = nil
}
