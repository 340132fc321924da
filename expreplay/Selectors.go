package expreplay

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Selector implements functionality for choosing how data should be
// sampled from an experience replay buffer
type Selector interface {
	// choose selects n indices at which data should be sampled from
	// the storage
	choose(s *storage, n int) []int

	// added notifies the Selector that a row of the storage was
	// (over)written
	added(index int)

	// cleared notifies the Selector that the storage was emptied
	cleared()
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly with replacement
type uniformSelector struct {
	rng *rand.Rand
}

// newUniformSelector returns a new Selector which selects data
// uniformly randomly from an experience replay buffer
func newUniformSelector(seed uint64) *uniformSelector {
	source := rand.NewSource(seed)
	rng := rand.New(source)

	return &uniformSelector{rng: rng}
}

// choose implements the Selector interface
func (u *uniformSelector) choose(s *storage, n int) []int {
	selected := make([]int, n)
	for i := range selected {
		selected[i] = u.rng.Intn(s.len)
	}
	return selected
}

// added implements the Selector interface
func (u *uniformSelector) added(int) {}

// cleared implements the Selector interface
func (u *uniformSelector) cleared() {}

// prioritySelector is a Selector which selects data with probability
// proportional to priority^α. Rows are given the maximum priority seen
// so far when they are written.
type prioritySelector struct {
	alpha   float64
	beta    float64
	epsilon float64

	maxPriority float64
	maxWeight   float64   // Largest weight whose sum over rows is finite
	weights     []float64 // priority^α of each row, 0 for unused rows
	sampler     sampleuv.Weighted
	rng         *rand.Rand
}

// newPrioritySelector returns a new prioritySelector for storage with
// the argument capacity
func newPrioritySelector(capacity int, alpha, beta, epsilon float64,
	seed uint64) *prioritySelector {
	source := rand.NewSource(seed)
	weights := make([]float64, capacity)

	return &prioritySelector{
		alpha:       alpha,
		beta:        beta,
		epsilon:     epsilon,
		maxPriority: 1.0,
		maxWeight:   math.MaxFloat64 / float64(capacity),
		weights:     weights,
		sampler:     sampleuv.NewWeighted(weights, source),
		rng:         rand.New(source),
	}
}

// choose implements the Selector interface
func (p *prioritySelector) choose(s *storage, n int) []int {
	selected := make([]int, n)
	for i := range selected {
		index, ok := p.sampler.Take()
		if ok {
			// Take samples without replacement
			p.sampler.Reweight(index, p.weights[index])
		}

		// Weights too small to sample from fall back to uniform
		// selection
		if !ok || index >= s.len {
			index = p.rng.Intn(s.len)
		}
		selected[i] = index
	}
	return selected
}

// added implements the Selector interface
func (p *prioritySelector) added(index int) {
	p.setWeight(index, math.Pow(p.maxPriority, p.alpha))
}

// cleared implements the Selector interface
func (p *prioritySelector) cleared() {
	for i := range p.weights {
		p.weights[i] = 0
	}
	p.sampler.ReweightAll(p.weights)
	p.maxPriority = 1.0
}

// update sets the priorities of the rows at indices
func (p *prioritySelector) update(s *storage, indices []int,
	priorities []float64) error {
	if len(indices) != len(priorities) {
		return fmt.Errorf("%w: %v indices but %v priorities",
			errInvalidPriority, len(indices), len(priorities))
	}

	// Check everything first so that a bad update changes nothing
	for i, index := range indices {
		if index < 0 || index >= s.len {
			return fmt.Errorf("%w: index %v out of range [0, %v)",
				errInvalidPriority, index, s.len)
		}
		if priorities[i] < 0 || math.IsNaN(priorities[i]) ||
			math.IsInf(priorities[i], 0) {
			return fmt.Errorf("%w: priority %v at index %v",
				errInvalidPriority, priorities[i], index)
		}
	}

	for i, index := range indices {
		priority := priorities[i] + p.epsilon
		p.maxPriority = math.Max(p.maxPriority, priority)
		p.setWeight(index, math.Pow(priority, p.alpha))
	}
	return nil
}

// importanceWeights returns the importance sampling weights
// (P(i) / min P)^-β of the rows at indices, where the minimum is taken
// over rows with a positive weight. Rows whose weight underflowed to
// zero are given weight 1.
func (p *prioritySelector) importanceWeights(s *storage,
	indices []int) []float64 {
	minWeight := math.Inf(1)
	for _, w := range p.weights[:s.len] {
		if w > 0 && w < minWeight {
			minWeight = w
		}
	}

	weights := make([]float64, len(indices))
	for i, index := range indices {
		w := p.weights[index]
		if w <= 0 || math.IsInf(minWeight, 1) {
			weights[i] = 1
			continue
		}
		weights[i] = math.Pow(w/minWeight, -p.beta)
	}
	return weights
}

// setWeight sets the weight of a row, capped so that the total weight
// of all rows stays finite
func (p *prioritySelector) setWeight(index int, weight float64) {
	weight = math.Min(weight, p.maxWeight)
	p.weights[index] = weight
	p.sampler.Reweight(index, weight)
}
