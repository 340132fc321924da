package environment

import (
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// boxSpace is neither discrete nor continuous
type boxSpace struct{}

func (boxSpace) Cardinality() Cardinality { return "Box" }

func TestShape(t *testing.T) {
	continuous := NewContinuous(84, 84, 4)

	tests := []struct {
		name  string
		space Space
		want  []int
	}{
		{"Discrete", NewDiscrete(6), []int{1}},
		{"DiscretePointer", &DiscreteSpace{N: 2}, []int{1}},
		{"Vector", NewContinuous(4), []int{4}},
		{"Image", continuous, []int{84, 84, 4}},
		{"ContinuousPointer", &continuous, []int{84, 84, 4}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			shape, err := Shape(test.space)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(shape, test.want) {
				t.Errorf("want(%v) have(%v)", test.want, shape)
			}
		})
	}

	// The returned shape is a copy
	shape, _ := Shape(continuous)
	shape[0] = 1
	if continuous.Shape[0] != 84 {
		t.Error("modifying a returned shape should not modify the space")
	}
}

func TestShapeErrors(t *testing.T) {
	var nilContinuous *ContinuousSpace

	tests := map[string]Space{
		"Unsupported": boxSpace{},
		"Nil":         nil,
		"NilPointer":  nilContinuous,
		"NoShape":     ContinuousSpace{},
	}

	for name, space := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Shape(space); err == nil {
				t.Error("want error, have nil")
			}
		})
	}

	_, err := Shape(boxSpace{})
	if !errors.Is(err, ErrUnsupportedSpaceKind) {
		t.Errorf("want ErrUnsupportedSpaceKind, have %v", err)
	}
}

func TestIsDiscrete(t *testing.T) {
	tests := []struct {
		space Space
		want  bool
	}{
		{NewDiscrete(3), true},
		{&DiscreteSpace{N: 3}, true},
		{NewContinuous(3), false},
		{&ContinuousSpace{Shape: []int{3}}, false},
	}

	for _, test := range tests {
		discrete, err := IsDiscrete(test.space)
		if err != nil {
			t.Errorf("%v: %v", test.space, err)
		}
		if discrete != test.want {
			t.Errorf("%v: want(%v) have(%v)", test.space, test.want, discrete)
		}
	}

	if _, err := IsDiscrete(boxSpace{}); !errors.Is(err,
		ErrUnsupportedSpaceKind) {
		t.Errorf("want ErrUnsupportedSpaceKind, have %v", err)
	}
}

func TestNewSpacePanics(t *testing.T) {
	tests := map[string]func(){
		"Discrete":      func() { NewDiscrete(0) },
		"NoDimensions":  func() { NewContinuous() },
		"ZeroDimension": func() { NewContinuous(4, 0) },
		"Bounds": func() {
			NewBoundedContinuous(mat.NewVecDense(2, nil),
				mat.NewVecDense(3, nil))
		},
	}

	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("want panic")
				}
			}()
			f()
		})
	}
}

func TestBounded(t *testing.T) {
	lower := mat.NewVecDense(2, []float64{-1, -2})
	upper := mat.NewVecDense(2, []float64{1, 2})
	space := NewBoundedContinuous(lower, upper)

	if !space.Bounded() {
		t.Error("space should be bounded")
	}
	if !reflect.DeepEqual(space.Shape, []int{2}) {
		t.Errorf("shape: want([2]) have(%v)", space.Shape)
	}
	if NewContinuous(2).Bounded() {
		t.Error("space should not be bounded")
	}
}
