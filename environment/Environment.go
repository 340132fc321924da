// Package environment outlines the interfaces and structs needed to
// describe the observation and action spaces of an environment
package environment

import "fmt"

// Environment describes the layout of an environment's observations
// and actions
type Environment interface {
	ObservationSpace() Space
	ActionSpace() Space
}

// Description is a concrete Environment which simply holds an
// observation space and an action space
type Description struct {
	Name        string
	Observation Space
	Action      Space
}

// NewDescription returns a new Description
func NewDescription(name string, observation, action Space) Description {
	return Description{
		Name:        name,
		Observation: observation,
		Action:      action,
	}
}

// ObservationSpace implements the Environment interface
func (d Description) ObservationSpace() Space {
	return d.Observation
}

// ActionSpace implements the Environment interface
func (d Description) ActionSpace() Space {
	return d.Action
}

// String returns the string representation of the Description
func (d Description) String() string {
	return fmt.Sprintf("%v | Observations: %v | Actions: %v", d.Name,
		d.Observation, d.Action)
}
