package replaybuffer

import (
	"fmt"

	"github.com/samuelfneumann/replaykit/agent"
	"github.com/samuelfneumann/replaykit/environment"
	"github.com/samuelfneumann/replaykit/expreplay"
)

// Names of the fields of a buffer
const (
	Obs     = "obs"
	NextObs = "next_obs"
	Act     = "act"
	Rew     = "rew"
	Done    = expreplay.DoneField
	Mask    = "mask"
	Logp    = "logp"
	Ret     = "ret"
	Adv     = "adv"
	Encode  = "encode"
)

// Variant is a kind of buffer that a Factory can construct
type Variant string

const (
	Plain       Variant = "Plain"
	Prioritized Variant = "Prioritized"
)

// Plan describes a buffer which should be constructed: its Variant
// and the Config it should be constructed with
type Plan struct {
	Variant Variant
	Config  expreplay.Config
}

// Build constructs the buffer described by the Plan using a Factory
func (p Plan) Build(f expreplay.Factory) (expreplay.Buffer, error) {
	if p.Variant == Prioritized {
		return f.NewPrioritizedBuffer(p.Config)
	}
	return f.NewBuffer(p.Config)
}

// String returns the string representation of the Plan
func (p Plan) String() string {
	return fmt.Sprintf("%v | %v", p.Variant, p.Config)
}

// fieldSet assembles the fields of a buffer
type fieldSet struct {
	fields map[string]expreplay.FieldSpec
}

func newFieldSet() *fieldSet {
	return &fieldSet{fields: make(map[string]expreplay.FieldSpec)}
}

// with adds a field to the set. A nil shape describes a scalar field
// and an empty dtype means the buffer's default dtype is used.
func (f *fieldSet) with(name string, shape []int,
	dtype expreplay.Dtype) *fieldSet {
	var s []int
	if shape != nil {
		s = make([]int, len(shape))
		copy(s, shape)
	}
	f.fields[name] = expreplay.FieldSpec{Shape: s, Dtype: dtype}
	return f
}

// withIf adds a field to the set if cond is true
func (f *fieldSet) withIf(cond bool, name string, shape []int,
	dtype expreplay.Dtype) *fieldSet {
	if !cond {
		return f
	}
	return f.with(name, shape, dtype)
}

func (f *fieldSet) build() map[string]expreplay.FieldSpec {
	return f.fields
}

// BuildPlan selects the buffer that should store the experience of
// agent a in environment e.
//
// If either a or e is nil, no buffer is needed and BuildPlan returns
// a nil Plan and a nil error. Nil *agent.Descriptor and
// *environment.Description values are treated as nil. If either space of e is neither discrete
// nor continuous, a *SpaceError wrapping ErrUnsupportedSpaceKind is
// returned.
//
// On-policy agents always receive a Plain buffer holding a single
// rollout of Horizon steps. Off-policy agents receive a buffer of
// MemoryCapacity (or opts.Size) transitions whose Variant and fields
// are determined by opts.
func BuildPlan(a agent.Agent, e environment.Environment,
	opts Options) (*Plan, error) {
	if absent(a, e) {
		return nil, nil
	}
	if err := opts.validateDtypes(); err != nil {
		return nil, err
	}

	obsShape, err := spaceShape("observation", e.ObservationSpace())
	if err != nil {
		return nil, err
	}
	actShape, err := spaceShape("action", e.ActionSpace())
	if err != nil {
		return nil, err
	}

	// spaceShape has already rejected anything else
	discreteActions, _ := environment.IsDiscrete(e.ActionSpace())

	// Reserve a slot marking absorbing states
	if opts.UseAbsorbingState {
		obsShape[len(obsShape)-1]++
	}

	dtypes := opts.Dtypes.resolve()

	switch a.Kind() {
	case agent.OnPolicy:
		return onPolicyPlan(a, obsShape, actShape, discreteActions, dtypes)

	case agent.OffPolicy:
		return offPolicyPlan(a, obsShape, actShape, opts, dtypes)
	}

	return nil, fmt.Errorf("%w %q", ErrUnsupportedAgentKind, a.Kind())
}

// absent returns whether either the agent or the environment is
// missing
func absent(a agent.Agent, e environment.Environment) bool {
	if a == nil || e == nil {
		return true
	}
	if d, ok := a.(*agent.Descriptor); ok && d == nil {
		return true
	}
	if d, ok := e.(*environment.Description); ok && d == nil {
		return true
	}
	return false
}

// onPolicyPlan returns the Plan of a buffer for a single rollout
func onPolicyPlan(a agent.Agent, obsShape, actShape []int,
	discreteActions bool, dtypes Dtypes) (*Plan, error) {
	if a.Horizon() < 1 {
		return nil, fmt.Errorf("%w: horizon must be >= 1 \n\thave(%v)",
			ErrInvalidOptions, a.Horizon())
	}

	var actDtype expreplay.Dtype
	if discreteActions {
		actDtype = dtypes.DiscreteAction
	}

	// The done field is not used by on-policy agents, but is kept so
	// that rollouts have the same terminal markers as replayed
	// transitions.
	fields := newFieldSet().
		with(Obs, obsShape, "").
		with(Act, actShape, actDtype).
		with(Done, nil, "").
		with(Mask, nil, "").
		with(Logp, nil, "").
		with(Ret, nil, "").
		with(Adv, nil, "")

	return &Plan{
		Variant: Plain,
		Config: expreplay.Config{
			Capacity:     a.Horizon(),
			DefaultDtype: dtypes.Default,
			Fields:       fields.build(),
		},
	}, nil
}

// offPolicyPlan returns the Plan of a replay buffer. Options are
// considered in order of precedence: prioritized n-step replay, then
// prioritized replay, then n-step replay, then encoded observations.
// Image-like observations are stored as pixels unless prioritized
// n-step replay is used.
func offPolicyPlan(a agent.Agent, obsShape, actShape []int, opts Options,
	dtypes Dtypes) (*Plan, error) {
	if err := opts.validateOffPolicy(); err != nil {
		return nil, err
	}

	capacity := a.MemoryCapacity()
	if opts.Size != nil {
		capacity = *opts.Size
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: memory capacity must be >= 1 "+
			"\n\thave(%v)", ErrInvalidOptions, capacity)
	}

	nstep := &expreplay.NStep{
		Length:      opts.NStepLength,
		Gamma:       a.Discount(),
		RewardField: Rew,
		NextField:   NextObs,
	}

	variant := Plain
	var obsDtype expreplay.Dtype
	var useNStep, useEncode bool

	if opts.UsePrioritized && opts.UseNStep {
		variant = Prioritized
		useNStep = true
	} else {
		if len(obsShape) == 3 {
			obsDtype = dtypes.Pixel
		}

		switch {
		case opts.UsePrioritized:
			variant = Prioritized
		case opts.UseNStep:
			useNStep = true
		case opts.UseEncode:
			useEncode = true
		}
	}

	fields := newFieldSet().
		with(Obs, obsShape, obsDtype).
		with(NextObs, obsShape, obsDtype).
		with(Act, actShape, "").
		with(Rew, nil, "").
		with(Done, nil, "").
		with(Mask, nil, "").
		withIf(useEncode, Encode, nil, "")

	config := expreplay.Config{
		Capacity:     capacity,
		DefaultDtype: dtypes.Default,
		Fields:       fields.build(),
	}
	if useNStep {
		config.NStep = nstep
	}

	return &Plan{Variant: variant, Config: config}, nil
}

// spaceShape returns the shape of a space
func spaceShape(role string, space environment.Space) ([]int, error) {
	shape, err := environment.Shape(space)
	if err != nil {
		return nil, &SpaceError{Role: role, Space: space, Err: err}
	}
	return shape, nil
}
