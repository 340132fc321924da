package agent

import (
	"fmt"
)

// Config represents a configuration for describing an agent. Configs
// are JSON serializable.
//
// If Kind is empty, the Kind registered for Type is used.
type Config struct {
	Type           Type `json:",omitempty"`
	Kind           Kind `json:",omitempty"`
	MemoryCapacity int  `json:",omitempty"` // Required for OffPolicy
	Horizon        int  `json:",omitempty"` // Required for OnPolicy
	Discount       float64
}

// ResolveKind returns the Kind of agent that the Config describes
func (c Config) ResolveKind() (Kind, error) {
	if c.Kind != "" {
		if c.Kind != OnPolicy && c.Kind != OffPolicy {
			return "", fmt.Errorf("resolveKind: no such kind %q", c.Kind)
		}
		return c.Kind, nil
	}

	if c.Type == "" {
		return "", fmt.Errorf("resolveKind: one of Type or Kind must be set")
	}
	kind, ok := KindOf(c.Type)
	if !ok {
		return "", fmt.Errorf("resolveKind: type %q is not registered",
			c.Type)
	}
	return kind, nil
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	kind, err := c.ResolveKind()
	if err != nil {
		return fmt.Errorf("validate: %v", err)
	}

	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1] "+
			"\n\thave(%v)", c.Discount)
	}

	switch kind {
	case OffPolicy:
		if c.MemoryCapacity < 1 {
			return fmt.Errorf("validate: off-policy agents require a "+
				"positive memory capacity \n\twant(>0) \n\thave(%v)",
				c.MemoryCapacity)
		}

	case OnPolicy:
		if c.Horizon < 1 {
			return fmt.Errorf("validate: on-policy agents require a "+
				"positive horizon \n\twant(>0) \n\thave(%v)", c.Horizon)
		}
	}

	return nil
}

// CreateAgent creates the Descriptor that the Config describes
func (c Config) CreateAgent() (Descriptor, error) {
	if err := c.Validate(); err != nil {
		return Descriptor{}, fmt.Errorf("createAgent: %v", err)
	}

	// Validate has already resolved the kind successfully
	kind, _ := c.ResolveKind()
	if kind == OnPolicy {
		return NewOnPolicy(c.Horizon, c.Discount), nil
	}
	return NewOffPolicy(c.MemoryCapacity, c.Discount), nil
}
