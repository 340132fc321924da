package environment

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Cardinality determines the cardinality of a space (discrete or
// continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Space describes the set of values that an observation or action can
// take in an environment. The only Spaces understood by this module
// are DiscreteSpace and ContinuousSpace.
type Space interface {
	Cardinality() Cardinality
}

// DiscreteSpace is a finite categorical space of N values enumerated
// from 0. For the purpose of sizing storage, a DiscreteSpace occupies
// a single scalar slot.
type DiscreteSpace struct {
	N int
}

// NewDiscrete returns a new DiscreteSpace with n values
func NewDiscrete(n int) DiscreteSpace {
	if n < 1 {
		panic(fmt.Sprintf("newDiscrete: number of values must be "+
			"positive \n\twant(>0) \n\thave(%v)", n))
	}
	return DiscreteSpace{N: n}
}

// Cardinality implements the Space interface
func (d DiscreteSpace) Cardinality() Cardinality {
	return Discrete
}

// String returns the string representation of the space
func (d DiscreteSpace) String() string {
	return fmt.Sprintf("Discrete(%v)", d.N)
}

// ContinuousSpace is an n-dimensional real-valued box. LowerBound and
// UpperBound are optional; when set, they describe the flattened box
// and must have as many elements as the shape.
type ContinuousSpace struct {
	Shape      []int
	LowerBound mat.Vector
	UpperBound mat.Vector
}

// NewContinuous returns a new unbounded ContinuousSpace with the given
// shape
func NewContinuous(shape ...int) ContinuousSpace {
	if len(shape) == 0 {
		panic("newContinuous: shape must have at least one dimension")
	}
	for _, dim := range shape {
		if dim < 1 {
			panic(fmt.Sprintf("newContinuous: illegal dimension %v in "+
				"shape %v", dim, shape))
		}
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return ContinuousSpace{Shape: s}
}

// NewBoundedContinuous returns a new ContinuousSpace with a single
// dimension whose bounds are given by lowerBound and upperBound.
func NewBoundedContinuous(lowerBound, upperBound mat.Vector) ContinuousSpace {
	if lowerBound.Len() != upperBound.Len() {
		panic(fmt.Sprintf("newBoundedContinuous: lower bounds length %v "+
			"must match upper bounds length %v", lowerBound.Len(),
			upperBound.Len()))
	}
	space := NewContinuous(lowerBound.Len())
	space.LowerBound = lowerBound
	space.UpperBound = upperBound
	return space
}

// Cardinality implements the Space interface
func (c ContinuousSpace) Cardinality() Cardinality {
	return Continuous
}

// Bounded returns whether the space has both lower and upper bounds
func (c ContinuousSpace) Bounded() bool {
	return c.LowerBound != nil && c.UpperBound != nil
}

// String returns the string representation of the space
func (c ContinuousSpace) String() string {
	return fmt.Sprintf("Continuous%v", c.Shape)
}

// ErrUnsupportedSpaceKind reports a Space which is neither a
// DiscreteSpace nor a ContinuousSpace
var ErrUnsupportedSpaceKind = errors.New("unsupported space kind")

// IsDiscrete returns whether a space is discrete. An error wrapping
// ErrUnsupportedSpaceKind is returned if the space is neither a
// DiscreteSpace nor a ContinuousSpace.
func IsDiscrete(space Space) (bool, error) {
	switch space.(type) {
	case DiscreteSpace, *DiscreteSpace:
		return true, nil
	case ContinuousSpace, *ContinuousSpace:
		return false, nil
	}
	return false, fmt.Errorf("isDiscrete: %w %T", ErrUnsupportedSpaceKind,
		space)
}

// Shape returns the shape of the data described by a space. Discrete
// spaces have shape [1] and continuous spaces have their own shape.
// The returned slice may be modified by the caller.
//
// An error wrapping ErrUnsupportedSpaceKind is returned if the space
// is neither a DiscreteSpace nor a ContinuousSpace.
func Shape(space Space) ([]int, error) {
	var shape []int
	switch s := space.(type) {
	case DiscreteSpace, *DiscreteSpace:
		return []int{1}, nil
	case ContinuousSpace:
		shape = s.Shape
	case *ContinuousSpace:
		if s == nil {
			return nil, fmt.Errorf("shape: nil continuous space")
		}
		shape = s.Shape
	default:
		return nil, fmt.Errorf("shape: %w %T", ErrUnsupportedSpaceKind,
			space)
	}

	if len(shape) == 0 {
		return nil, fmt.Errorf("shape: continuous space has no dimensions")
	}
	out := make([]int, len(shape))
	copy(out, shape)
	return out, nil
}
