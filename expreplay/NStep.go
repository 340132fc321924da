package expreplay

// nstepQueue accumulates transitions over n consecutive steps. Each
// transition leaves the queue with its reward replaced by the
// discounted sum of the rewards of the following n steps and its next
// field replaced by that of the n-th following step. Accumulation
// stops early at a terminal transition.
type nstepQueue struct {
	config    NStep
	doneField string // Empty if terminal transitions are not tracked
	pending   []Transition
}

// newNStepQueue returns a new nstepQueue. If doneField is not empty,
// a transition with a non-zero value in doneField ends an episode.
func newNStepQueue(config NStep, doneField string) *nstepQueue {
	return &nstepQueue{
		config:    config,
		doneField: doneField,
		pending:   make([]Transition, 0, config.Length),
	}
}

// push adds a transition to the queue and returns the transitions
// that are ready to be stored, oldest first
func (q *nstepQueue) push(t Transition) []Transition {
	q.pending = append(q.pending, t.Copy())

	if q.done(t) {
		return q.flush()
	}
	if len(q.pending) < q.config.Length {
		return nil
	}

	ready := q.fold(0)
	q.pending = q.pending[1:]
	return []Transition{ready}
}

// flush empties the queue, returning all pending transitions
// accumulated over the steps that remain
func (q *nstepQueue) flush() []Transition {
	ready := make([]Transition, len(q.pending))
	for i := range q.pending {
		ready[i] = q.fold(i)
	}
	q.reset()
	return ready
}

// reset discards all pending transitions
func (q *nstepQueue) reset() {
	q.pending = q.pending[:0]
}

// fold accumulates the pending transitions starting at index start
func (q *nstepQueue) fold(start int) Transition {
	out := q.pending[start].Copy()

	reward := 0.0
	discount := 1.0
	last := start
	for i := start; i < len(q.pending) && i-start < q.config.Length; i++ {
		t := q.pending[i]
		reward += discount * t[q.config.RewardField][0]
		discount *= q.config.Gamma
		last = i

		if q.done(t) {
			break
		}
	}

	out[q.config.RewardField] = []float64{reward}
	out[q.config.NextField] = copyValues(q.pending[last][q.config.NextField])
	if q.doneField != "" {
		out[q.doneField] = copyValues(q.pending[last][q.doneField])
	}
	return out
}

// done returns whether a transition is terminal
func (q *nstepQueue) done(t Transition) bool {
	if q.doneField == "" {
		return false
	}
	values := t[q.doneField]
	return len(values) > 0 && values[0] != 0
}
