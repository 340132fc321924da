// Package agent describes the properties of reinforcement learning
// agents that determine how their experience should be stored
package agent

import "fmt"

// Kind denotes how an agent learns from its experience. OnPolicy
// agents learn only from their most recent rollout and OffPolicy agents
// learn from an arbitrarily old pool of experience.
type Kind string

const (
	OnPolicy  Kind = "OnPolicy"
	OffPolicy Kind = "OffPolicy"
)

// Agent outlines the attributes of an agent which are needed to size
// its experience storage.
//
// MemoryCapacity is only meaningful for OffPolicy agents and Horizon
// is only meaningful for OnPolicy agents.
type Agent interface {
	Kind() Kind
	MemoryCapacity() int // Maximum number of stored transitions
	Horizon() int        // Number of steps in a single rollout
	Discount() float64
}

// Descriptor is a concrete Agent
type Descriptor struct {
	kind           Kind
	memoryCapacity int
	horizon        int
	discount       float64
}

// NewOffPolicy returns a new OffPolicy Descriptor
func NewOffPolicy(memoryCapacity int, discount float64) Descriptor {
	return Descriptor{
		kind:           OffPolicy,
		memoryCapacity: memoryCapacity,
		discount:       discount,
	}
}

// NewOnPolicy returns a new OnPolicy Descriptor
func NewOnPolicy(horizon int, discount float64) Descriptor {
	return Descriptor{
		kind:     OnPolicy,
		horizon:  horizon,
		discount: discount,
	}
}

// Kind implements the Agent interface
func (d Descriptor) Kind() Kind {
	return d.kind
}

// MemoryCapacity implements the Agent interface
func (d Descriptor) MemoryCapacity() int {
	return d.memoryCapacity
}

// Horizon implements the Agent interface
func (d Descriptor) Horizon() int {
	return d.horizon
}

// Discount implements the Agent interface
func (d Descriptor) Discount() float64 {
	return d.discount
}

// String returns the string representation of the Descriptor
func (d Descriptor) String() string {
	if d.kind == OnPolicy {
		return fmt.Sprintf("%v | Horizon: %v | Discount: %.3f", d.kind,
			d.horizon, d.discount)
	}
	return fmt.Sprintf("%v | Memory Capacity: %v | Discount: %.3f", d.kind,
		d.memoryCapacity, d.discount)
}
