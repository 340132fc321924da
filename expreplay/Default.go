package expreplay

import (
	"fmt"
)

// buffer implements a concrete Buffer which stores transitions in ring
// storage and samples them using a Selector. If the buffer has an
// nstepQueue, transitions are accumulated over multiple steps before
// being stored.
type buffer struct {
	store   *storage
	nstep   *nstepQueue
	sampler Selector
}

// New creates and returns a new Buffer which samples transitions
// uniformly randomly with replacement
func New(c Config, seed uint64) (Buffer, error) {
	b, err := newBuffer(c, newUniformSelector(seed))
	if err != nil {
		return nil, err
	}
	return b, nil
}

// newBuffer returns a new buffer using the argument Selector
func newBuffer(c Config, sampler Selector) (*buffer, error) {
	if err := c.Validate(); err != nil {
		return nil, &ExpReplayError{Op: "new", Err: err}
	}

	var nstep *nstepQueue
	if c.NStep != nil {
		doneField := ""
		if _, ok := c.Fields[DoneField]; ok {
			doneField = DoneField
		}
		nstep = newNStepQueue(*c.NStep, doneField)
	}

	return &buffer{
		store:   newStorage(c),
		nstep:   nstep,
		sampler: sampler,
	}, nil
}

// Store adds a transition to the buffer
func (b *buffer) Store(t Transition) error {
	if err := b.store.validate(t); err != nil {
		return &ExpReplayError{Op: "store", Err: err}
	}

	if b.nstep == nil {
		return b.write(t)
	}
	return b.writeAll(b.nstep.push(t))
}

// EndEpisode stores all transitions still being accumulated
func (b *buffer) EndEpisode() error {
	if b.nstep == nil {
		return nil
	}
	return b.writeAll(b.nstep.flush())
}

func (b *buffer) writeAll(ts []Transition) error {
	for _, t := range ts {
		if err := b.write(t); err != nil {
			return err
		}
	}
	return nil
}

func (b *buffer) write(t Transition) error {
	index, err := b.store.write(t)
	if err != nil {
		return &ExpReplayError{Op: "store", Err: err}
	}
	b.sampler.added(index)
	return nil
}

// Sample samples and returns a batch of transitions from the buffer
func (b *buffer) Sample(batchSize int) (Batch, error) {
	if b.Len() == 0 {
		return Batch{}, &ExpReplayError{Op: "sample", Err: errEmptyCache}
	}
	if batchSize < 1 {
		err := fmt.Errorf("batch size must be >= 1 \n\thave(%v)", batchSize)
		return Batch{}, &ExpReplayError{Op: "sample", Err: err}
	}

	indices := b.sampler.choose(b.store, batchSize)
	return Batch{
		Fields:  b.store.gather(indices),
		Indices: indices,
	}, nil
}

// All returns all transitions in the buffer from oldest to newest
func (b *buffer) All() (Batch, error) {
	if b.Len() == 0 {
		return Batch{}, &ExpReplayError{Op: "all", Err: errEmptyCache}
	}

	indices := b.store.order()
	return Batch{
		Fields:  b.store.gather(indices),
		Indices: indices,
	}, nil
}

// Clear removes all transitions from the buffer, including those
// still being accumulated
func (b *buffer) Clear() {
	b.store.clear()
	b.sampler.cleared()
	if b.nstep != nil {
		b.nstep.reset()
	}
}

// Len returns the current number of transitions in the buffer
func (b *buffer) Len() int {
	return b.store.len
}

// Capacity returns the maximum number of transitions in the buffer
func (b *buffer) Capacity() int {
	return b.store.capacity
}
