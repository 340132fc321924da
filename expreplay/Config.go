package expreplay

import (
	"fmt"
	"sort"

	"github.com/samuelfneumann/replaykit/utils/intutils"
	"gorgonia.org/tensor"
)

// Dtype is the numeric type that a field of a buffer is stored as
type Dtype string

// Available Dtypes
const (
	Float32 Dtype = "float32"
	Float64 Dtype = "float64"
	Uint8   Dtype = "uint8"
	Int32   Dtype = "int32"
	Int64   Dtype = "int64"
)

// Tensor returns the tensor.Dtype equivalent to the Dtype
func (d Dtype) Tensor() (tensor.Dtype, error) {
	switch d {
	case Float32:
		return tensor.Float32, nil
	case Float64:
		return tensor.Float64, nil
	case Uint8:
		return tensor.Uint8, nil
	case Int32:
		return tensor.Int32, nil
	case Int64:
		return tensor.Int64, nil
	}
	return tensor.Dtype{}, fmt.Errorf("tensor: no such dtype %q", string(d))
}

// Valid returns whether the Dtype is one of the available Dtypes
func (d Dtype) Valid() bool {
	_, err := d.Tensor()
	return err == nil
}

// FieldSpec describes a single field stored in a buffer. A nil Shape
// describes a scalar field, and an empty Dtype means that the field
// uses the default Dtype of the buffer.
type FieldSpec struct {
	Shape []int `json:",omitempty"`
	Dtype Dtype `json:",omitempty"`
}

// Size returns the number of values in a single row of the field
func (f FieldSpec) Size() int {
	return intutils.Prod(f.Shape...)
}

// String returns the string representation of the FieldSpec
func (f FieldSpec) String() string {
	if f.Dtype == "" {
		return fmt.Sprintf("%v", shapeString(f.Shape))
	}
	return fmt.Sprintf("%v %v", shapeString(f.Shape), f.Dtype)
}

// NStep describes how transitions are accumulated over Length
// consecutive steps before being stored. The RewardField holds the
// discounted sum of rewards and the NextField holds the value of that
// field Length steps in the future.
type NStep struct {
	Length      int
	Gamma       float64
	RewardField string
	NextField   string
}

// Config implements a specific configuration of a replay buffer.
//
// Configs are constructed fresh for each buffer and consumed by a
// Factory; a Factory never modifies the Config it is given.
type Config struct {
	Capacity     int
	DefaultDtype Dtype
	Fields       map[string]FieldSpec
	NStep        *NStep `json:",omitempty"`
}

// FieldNames returns the names of all fields in sorted order
func (c Config) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldDtype returns the Dtype that a field is stored as
func (c Config) FieldDtype(name string) Dtype {
	if spec, ok := c.Fields[name]; ok && spec.Dtype != "" {
		return spec.Dtype
	}
	return c.DefaultDtype
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be >= 1 \n\thave(%v)",
			errInvalidConfig, c.Capacity)
	}
	if !c.DefaultDtype.Valid() {
		return fmt.Errorf("%w: no such default dtype %q", errInvalidConfig,
			c.DefaultDtype)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: no fields", errInvalidConfig)
	}

	for name, spec := range c.Fields {
		if spec.Dtype != "" && !spec.Dtype.Valid() {
			return fmt.Errorf("%w: field %q has no such dtype %q",
				errInvalidConfig, name, spec.Dtype)
		}
		for _, dim := range spec.Shape {
			if dim < 1 {
				return fmt.Errorf("%w: field %q has illegal shape %v",
					errInvalidConfig, name, spec.Shape)
			}
		}
	}

	if c.NStep != nil {
		return c.validateNStep()
	}
	return nil
}

func (c Config) validateNStep() error {
	n := c.NStep
	if n.Length < 1 {
		return fmt.Errorf("%w: n-step length must be >= 1 \n\thave(%v)",
			errInvalidConfig, n.Length)
	}
	if n.Gamma < 0 || n.Gamma > 1 {
		return fmt.Errorf("%w: n-step gamma must be in [0, 1] \n\thave(%v)",
			errInvalidConfig, n.Gamma)
	}

	rew, ok := c.Fields[n.RewardField]
	if !ok {
		return fmt.Errorf("%w: n-step reward field %q is not a field",
			errInvalidConfig, n.RewardField)
	}
	if rew.Size() != 1 {
		return fmt.Errorf("%w: n-step reward field %q must be scalar",
			errInvalidConfig, n.RewardField)
	}
	if _, ok := c.Fields[n.NextField]; !ok {
		return fmt.Errorf("%w: n-step next field %q is not a field",
			errInvalidConfig, n.NextField)
	}
	return nil
}

// String returns the string representation of the Config
func (c Config) String() string {
	str := fmt.Sprintf("Capacity: %v | Default Dtype: %v", c.Capacity,
		c.DefaultDtype)
	for _, name := range c.FieldNames() {
		str += fmt.Sprintf("\n\t%v: %v", name, c.Fields[name])
	}
	if c.NStep != nil {
		str += fmt.Sprintf("\n\tNStep: length %v, gamma %v, rew %q, next %q",
			c.NStep.Length, c.NStep.Gamma, c.NStep.RewardField,
			c.NStep.NextField)
	}
	return str
}

func shapeString(shape []int) string {
	if len(shape) == 0 {
		return "()"
	}
	str := "("
	for i, dim := range shape {
		if i > 0 {
			str += ", "
		}
		str += fmt.Sprint(dim)
	}
	if len(shape) == 1 {
		str += ","
	}
	return str + ")"
}
