package expreplay

import (
	"fmt"
)

// prioritizedBuffer implements a PrioritizedBuffer following
// https://arxiv.org/abs/1511.05952. Transitions are sampled with
// probability proportional to priority^α and importance sampling
// weights are annealed by β.
type prioritizedBuffer struct {
	*buffer
	priorities *prioritySelector
}

// NewPrioritized creates and returns a new PrioritizedBuffer. The
// alpha parameter determines how strongly sampling is skewed toward
// high priorities, beta determines the strength of the importance
// sampling correction, and epsilon is added to each priority so that
// no transition has zero probability of being sampled.
func NewPrioritized(c Config, alpha, beta, epsilon float64,
	seed uint64) (PrioritizedBuffer, error) {
	if alpha < 0 {
		err := fmt.Errorf("%w: alpha must be >= 0 \n\thave(%v)",
			errInvalidConfig, alpha)
		return nil, &ExpReplayError{Op: "newPrioritized", Err: err}
	}
	if beta < 0 {
		err := fmt.Errorf("%w: beta must be >= 0 \n\thave(%v)",
			errInvalidConfig, beta)
		return nil, &ExpReplayError{Op: "newPrioritized", Err: err}
	}
	if epsilon <= 0 {
		err := fmt.Errorf("%w: epsilon must be > 0 \n\thave(%v)",
			errInvalidConfig, epsilon)
		return nil, &ExpReplayError{Op: "newPrioritized", Err: err}
	}
	if c.Capacity < 1 {
		err := fmt.Errorf("%w: capacity must be >= 1 \n\thave(%v)",
			errInvalidConfig, c.Capacity)
		return nil, &ExpReplayError{Op: "newPrioritized", Err: err}
	}

	priorities := newPrioritySelector(c.Capacity, alpha, beta, epsilon, seed)
	b, err := newBuffer(c, priorities)
	if err != nil {
		return nil, err
	}

	return &prioritizedBuffer{
		buffer:     b,
		priorities: priorities,
	}, nil
}

// Sample samples a batch of transitions from the buffer along with
// their importance sampling weights
func (p *prioritizedBuffer) Sample(batchSize int) (Batch, error) {
	batch, err := p.buffer.Sample(batchSize)
	if err != nil {
		return batch, err
	}

	batch.Weights = p.priorities.importanceWeights(p.store, batch.Indices)
	return batch, nil
}

// UpdatePriorities sets the priorities of the transitions at indices
func (p *prioritizedBuffer) UpdatePriorities(indices []int,
	priorities []float64) error {
	err := p.priorities.update(p.store, indices, priorities)
	if err != nil {
		return &ExpReplayError{Op: "updatePriorities", Err: err}
	}
	return nil
}
