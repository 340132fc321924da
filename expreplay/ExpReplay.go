// Package expreplay implements experience replay buffers whose layout
// is described by a Config: a capacity, a default numeric type, and a
// set of named fields each with their own shape and type.
package expreplay

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Default parameters of prioritized buffers
const (
	DefaultAlpha   = 0.6
	DefaultBeta    = 0.4
	DefaultEpsilon = 1e-4
)

// DoneField is the name of the field which marks terminal transitions.
// N-step accumulation stops at a transition with a non-zero DoneField.
const DoneField = "done"

// Transition maps field names to the flattened values of those fields
// for a single step of experience
type Transition map[string][]float64

// Copy returns a deep copy of the Transition
func (t Transition) Copy() Transition {
	out := make(Transition, len(t))
	for name, values := range t {
		out[name] = copyValues(values)
	}
	return out
}

func copyValues(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

// Batch is a batch of transitions drawn from a buffer. Each field is a
// tensor of shape (batch size, field shape...). Indices holds the row
// of the buffer each transition was drawn from. Weights holds
// importance sampling weights and is only set by prioritized buffers.
type Batch struct {
	Fields  map[string]*tensor.Dense
	Indices []int
	Weights []float64
}

// Len returns the number of transitions in the batch
func (b Batch) Len() int {
	return len(b.Indices)
}

// Buffer implements an experience replay buffer
type Buffer interface {
	// Store adds a transition to the buffer
	Store(t Transition) error

	// Sample samples a batch of batchSize transitions from the buffer
	Sample(batchSize int) (Batch, error)

	// EndEpisode signals the end of an episode, storing any
	// transitions which are still being accumulated
	EndEpisode() error

	// All returns every transition in the buffer from oldest to newest
	All() (Batch, error)

	// Clear removes all transitions from the buffer
	Clear()

	// Len returns the current number of transitions in the buffer
	Len() int

	// Capacity returns the maximum number of transitions in the buffer
	Capacity() int
}

// PrioritizedBuffer implements an experience replay buffer which samples
// transitions with probability proportional to their priority
type PrioritizedBuffer interface {
	Buffer

	// UpdatePriorities sets the priorities of the transitions at
	// indices, which are the Indices of a sampled Batch
	UpdatePriorities(indices []int, priorities []float64) error
}

// Factory constructs buffers from Configs
type Factory interface {
	NewBuffer(c Config) (Buffer, error)
	NewPrioritizedBuffer(c Config) (PrioritizedBuffer, error)
}

// Backend is the default Factory, constructing the buffers of this
// package
type Backend struct {
	Seed uint64

	// Prioritized buffer parameters
	Alpha   float64
	Beta    float64
	Epsilon float64
}

// NewBackend returns a new Backend with default prioritized buffer
// parameters
func NewBackend(seed uint64) Backend {
	return Backend{
		Seed:    seed,
		Alpha:   DefaultAlpha,
		Beta:    DefaultBeta,
		Epsilon: DefaultEpsilon,
	}
}

// NewBuffer implements the Factory interface
func (b Backend) NewBuffer(c Config) (Buffer, error) {
	return New(c, b.Seed)
}

// NewPrioritizedBuffer implements the Factory interface
func (b Backend) NewPrioritizedBuffer(c Config) (PrioritizedBuffer, error) {
	return NewPrioritized(c, b.Alpha, b.Beta, b.Epsilon, b.Seed)
}

// String returns the string representation of the Backend
func (b Backend) String() string {
	return fmt.Sprintf("Backend | Seed: %v | α: %v | β: %v | ε: %v", b.Seed,
		b.Alpha, b.Beta, b.Epsilon)
}
