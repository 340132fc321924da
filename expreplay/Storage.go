package expreplay

import (
	"fmt"
	"math"

	"gorgonia.org/tensor"
)

// column stores the values of a single field for every row of a
// buffer. The backing slice has the concrete Go type of the field's
// Dtype.
type column struct {
	shape   []int
	size    int // Number of values per row
	backing interface{}
}

// storage implements fixed-capacity ring storage of transitions. Once
// full, the oldest row is overwritten first.
type storage struct {
	columns  map[string]*column
	capacity int
	next     int // Index of the next row to write
	len      int
}

// newStorage allocates storage for all fields of a Config. The Config
// should have been validated.
func newStorage(c Config) *storage {
	columns := make(map[string]*column, len(c.Fields))
	for name, spec := range c.Fields {
		shape := make([]int, len(spec.Shape))
		copy(shape, spec.Shape)

		columns[name] = &column{
			shape:   shape,
			size:    spec.Size(),
			backing: makeBacking(c.FieldDtype(name), c.Capacity*spec.Size()),
		}
	}

	return &storage{
		columns:  columns,
		capacity: c.Capacity,
	}
}

// validate returns an error if a transition cannot be stored
func (s *storage) validate(t Transition) error {
	for name, col := range s.columns {
		values, ok := t[name]
		if !ok {
			return fmt.Errorf("%w %q", errMissingField, name)
		}
		if len(values) != col.size {
			return fmt.Errorf("%w for %q \n\twant(%v)\n\thave(%v)",
				errFieldSize, name, col.size, len(values))
		}
	}
	return nil
}

// write stores a transition and returns the row it was written to.
// Fields of the transition that are not stored are ignored.
func (s *storage) write(t Transition) (int, error) {
	if err := s.validate(t); err != nil {
		return -1, err
	}

	index := s.next
	for name, col := range s.columns {
		setRow(col.backing, index*col.size, t[name])
	}

	s.next = (s.next + 1) % s.capacity
	if s.len < s.capacity {
		s.len++
	}
	return index, nil
}

// order returns the rows currently in use from oldest to newest
func (s *storage) order() []int {
	indices := make([]int, s.len)
	start := 0
	if s.len == s.capacity {
		start = s.next
	}
	for i := range indices {
		indices[i] = (start + i) % s.capacity
	}
	return indices
}

// gather copies the rows at the argument indices into new tensors of
// shape (len(indices), fieldShape...)
func (s *storage) gather(indices []int) map[string]*tensor.Dense {
	fields := make(map[string]*tensor.Dense, len(s.columns))
	for name, col := range s.columns {
		backing := gatherRows(col.backing, col.size, indices)
		shape := append([]int{len(indices)}, col.shape...)

		fields[name] = tensor.New(
			tensor.WithShape(shape...),
			tensor.WithBacking(backing),
		)
	}
	return fields
}

// clear empties the storage. Previously stored values are left in
// place and overwritten by later writes.
func (s *storage) clear() {
	s.next = 0
	s.len = 0
}

// makeBacking allocates a slice of n values of the argument Dtype
func makeBacking(d Dtype, n int) interface{} {
	switch d {
	case Float64:
		return make([]float64, n)
	case Uint8:
		return make([]uint8, n)
	case Int32:
		return make([]int32, n)
	case Int64:
		return make([]int64, n)
	default:
		return make([]float32, n)
	}
}

// setRow converts values to the element type of backing and copies
// them into backing starting at index start
func setRow(backing interface{}, start int, values []float64) {
	switch b := backing.(type) {
	case []float64:
		copy(b[start:], values)

	case []float32:
		for i, v := range values {
			b[start+i] = float32(v)
		}

	case []uint8:
		for i, v := range values {
			b[start+i] = uint8(math.Max(0, math.Min(math.MaxUint8,
				math.Round(v))))
		}

	case []int32:
		for i, v := range values {
			b[start+i] = int32(math.Round(v))
		}

	case []int64:
		for i, v := range values {
			b[start+i] = int64(math.Round(v))
		}

	default:
		panic(fmt.Sprintf("setRow: unknown backing type %T", backing))
	}
}

// gatherRows returns a new slice of the same type as backing holding
// the rows at indices, each of which has size values
func gatherRows(backing interface{}, size int, indices []int) interface{} {
	n := len(indices) * size

	switch b := backing.(type) {
	case []float64:
		out := make([]float64, n)
		for i, index := range indices {
			copy(out[i*size:(i+1)*size], b[index*size:(index+1)*size])
		}
		return out

	case []float32:
		out := make([]float32, n)
		for i, index := range indices {
			copy(out[i*size:(i+1)*size], b[index*size:(index+1)*size])
		}
		return out

	case []uint8:
		out := make([]uint8, n)
		for i, index := range indices {
			copy(out[i*size:(i+1)*size], b[index*size:(index+1)*size])
		}
		return out

	case []int32:
		out := make([]int32, n)
		for i, index := range indices {
			copy(out[i*size:(i+1)*size], b[index*size:(index+1)*size])
		}
		return out

	case []int64:
		out := make([]int64, n)
		for i, index := range indices {
			copy(out[i*size:(i+1)*size], b[index*size:(index+1)*size])
		}
		return out
	}

	panic(fmt.Sprintf("gatherRows: unknown backing type %T", backing))
}
