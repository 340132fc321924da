package replaybuffer

import (
	"fmt"

	"github.com/samuelfneumann/replaykit/expreplay"
)

// Dtypes outlines the numeric types used for buffer fields. Default is
// used for all fields without an override, Pixel for image-like
// observations of off-policy agents, and DiscreteAction for discrete
// actions of on-policy agents. Empty members take the values of
// DefaultDtypes.
type Dtypes struct {
	Default        expreplay.Dtype `json:",omitempty"`
	Pixel          expreplay.Dtype `json:",omitempty"`
	DiscreteAction expreplay.Dtype `json:",omitempty"`
}

// DefaultDtypes returns the default Dtypes: 32-bit floats, with 8-bit
// unsigned pixels and 32-bit signed discrete actions
func DefaultDtypes() Dtypes {
	return Dtypes{
		Default:        expreplay.Float32,
		Pixel:          expreplay.Uint8,
		DiscreteAction: expreplay.Int32,
	}
}

// resolve returns a copy of the Dtypes with empty members set to their
// defaults
func (d Dtypes) resolve() Dtypes {
	defaults := DefaultDtypes()
	if d.Default == "" {
		d.Default = defaults.Default
	}
	if d.Pixel == "" {
		d.Pixel = defaults.Pixel
	}
	if d.DiscreteAction == "" {
		d.DiscreteAction = defaults.DiscreteAction
	}
	return d
}

// Options determine which kind of buffer is selected for an off-policy
// agent. Options are JSON serializable.
//
// Size, if set, overrides the memory capacity of the agent. The
// UsePrioritized, UseNStep, and Size options are ignored for on-policy
// agents.
type Options struct {
	UsePrioritized    bool
	UseNStep          bool
	NStepLength       int  `json:",omitempty"`
	Size              *int `json:",omitempty"`
	UseEncode         bool
	UseAbsorbingState bool
	Dtypes            Dtypes
}

// SizeOverride returns a pointer to size, for use as Options.Size
func SizeOverride(size int) *int {
	return &size
}

// validateDtypes returns an error if any set Dtype is unknown
func (o Options) validateDtypes() error {
	for _, d := range []expreplay.Dtype{o.Dtypes.Default, o.Dtypes.Pixel,
		o.Dtypes.DiscreteAction} {
		if d != "" && !d.Valid() {
			return fmt.Errorf("%w: no such dtype %q", ErrInvalidOptions, d)
		}
	}
	return nil
}

// validateOffPolicy returns an error if the options cannot be used to
// describe a buffer for an off-policy agent
func (o Options) validateOffPolicy() error {
	if o.UseNStep && o.NStepLength < 1 {
		return fmt.Errorf("%w: n-step length must be >= 1 \n\thave(%v)",
			ErrInvalidOptions, o.NStepLength)
	}
	if o.Size != nil && *o.Size < 1 {
		return fmt.Errorf("%w: size must be >= 1 \n\thave(%v)",
			ErrInvalidOptions, *o.Size)
	}
	return nil
}

// ignoredOnPolicy returns the names of the set options which are
// ignored for on-policy agents
func (o Options) ignoredOnPolicy() []string {
	var ignored []string
	if o.UsePrioritized {
		ignored = append(ignored, "prioritized replay")
	}
	if o.UseNStep {
		ignored = append(ignored, "n-step returns")
	}
	if o.Size != nil {
		ignored = append(ignored, "size override")
	}
	return ignored
}
