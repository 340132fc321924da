// Package envconfig provides configuration structs for describing
// environments by their observation and action spaces. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/replaykit/environment"
	"github.com/samuelfneumann/replaykit/utils/intutils"
	"gonum.org/v1/gonum/mat"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration. The Custom environment
// takes its spaces from the Observation and Action fields of a Config.
const (
	MountainCar EnvName = "MountainCar"
	Pendulum    EnvName = "Pendulum"
	Cartpole    EnvName = "Cartpole"
	Pong        EnvName = "Pong"
	Custom      EnvName = "Custom"
)

// Physical constants describing the preset environments
const (
	PongHeight   = 84
	PongWidth    = 84
	PongChannels = 4
	PongActions  = 6

	PendulumMaxTorque    = 2.0
	MountainCarMaxAction = 1.0
)

// SpaceConfig is a JSON serializable description of an
// environment.Space
type SpaceConfig struct {
	Cardinality env.Cardinality
	N           int       `json:",omitempty"` // Discrete only
	Shape       []int     `json:",omitempty"` // Continuous only
	LowerBound  []float64 `json:",omitempty"`
	UpperBound  []float64 `json:",omitempty"`
}

// Create returns the space described by the SpaceConfig
func (s SpaceConfig) Create() (env.Space, error) {
	switch s.Cardinality {
	case env.Discrete:
		if s.N < 1 {
			return nil, fmt.Errorf("create: discrete space must have a "+
				"positive number of values \n\twant(>0) \n\thave(%v)", s.N)
		}
		return env.NewDiscrete(s.N), nil

	case env.Continuous:
		if len(s.Shape) == 0 {
			return nil, fmt.Errorf("create: continuous space must have " +
				"a shape")
		}
		for _, dim := range s.Shape {
			if dim < 1 {
				return nil, fmt.Errorf("create: illegal dimension %v in "+
					"shape %v", dim, s.Shape)
			}
		}
		space := env.NewContinuous(s.Shape...)
		if s.LowerBound == nil && s.UpperBound == nil {
			return space, nil
		}

		size := intutils.Prod(s.Shape...)
		if len(s.LowerBound) != size || len(s.UpperBound) != size {
			return nil, fmt.Errorf("create: bounds must have %v elements, "+
				"have (%v, %v)", size, len(s.LowerBound), len(s.UpperBound))
		}
		space.LowerBound = mat.NewVecDense(size, s.LowerBound)
		space.UpperBound = mat.NewVecDense(size, s.UpperBound)
		return space, nil
	}

	return nil, fmt.Errorf("create: no such cardinality %q", s.Cardinality)
}

// Config implements a specific configuration of an environment
type Config struct {
	Environment       EnvName
	ContinuousActions bool

	// Spaces for the Custom environment
	Observation *SpaceConfig `json:",omitempty"`
	Action      *SpaceConfig `json:",omitempty"`
}

// NewConfig returns a new environment Config for a preset environment
func NewConfig(envName EnvName, continuousActions bool) Config {
	return Config{
		Environment:       envName,
		ContinuousActions: continuousActions,
	}
}

// NewCustomConfig returns a new environment Config with the argument
// observation and action spaces
func NewCustomConfig(observation, action SpaceConfig) Config {
	return Config{
		Environment: Custom,
		Observation: &observation,
		Action:      &action,
	}
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	_, err := c.Create()
	return err
}

// Create returns the environment described by the Config
func (c Config) Create() (env.Environment, error) {
	switch c.Environment {
	case MountainCar:
		return CreateMountainCar(c.ContinuousActions), nil

	case Cartpole:
		return CreateCartpole(c.ContinuousActions), nil

	case Pendulum:
		return CreatePendulum(c.ContinuousActions), nil

	case Pong:
		if c.ContinuousActions {
			return nil, fmt.Errorf("create: Pong has no continuous-action " +
				"version")
		}
		return CreatePong(), nil

	case Custom:
		return c.createCustom()
	}

	return nil, fmt.Errorf("create: cannot create environment %v, no such "+
		"environment", c.Environment)
}

func (c Config) createCustom() (env.Environment, error) {
	if c.Observation == nil || c.Action == nil {
		return nil, fmt.Errorf("create: custom environment requires both " +
			"observation and action spaces")
	}

	obs, err := c.Observation.Create()
	if err != nil {
		return nil, fmt.Errorf("create: observation space: %v", err)
	}
	act, err := c.Action.Create()
	if err != nil {
		return nil, fmt.Errorf("create: action space: %v", err)
	}

	return env.NewDescription(string(Custom), obs, act), nil
}

// CreateMountainCar returns the description of the Mountain Car
// environment: position and velocity observations with either 3
// discrete actions or a single bounded continuous action.
func CreateMountainCar(continuousActions bool) env.Environment {
	obs := env.NewBoundedContinuous(
		mat.NewVecDense(2, []float64{-1.2, -0.07}),
		mat.NewVecDense(2, []float64{0.6, 0.07}),
	)

	var act env.Space = env.NewDiscrete(3)
	if continuousActions {
		act = env.NewBoundedContinuous(
			mat.NewVecDense(1, []float64{-MountainCarMaxAction}),
			mat.NewVecDense(1, []float64{MountainCarMaxAction}),
		)
	}
	return env.NewDescription(string(MountainCar), obs, act)
}

// CreateCartpole returns the description of the Cartpole environment
func CreateCartpole(continuousActions bool) env.Environment {
	inf := math.Inf(1)
	obs := env.NewBoundedContinuous(
		mat.NewVecDense(4, []float64{-4.8, -inf, -0.418, -inf}),
		mat.NewVecDense(4, []float64{4.8, inf, 0.418, inf}),
	)

	var act env.Space = env.NewDiscrete(2)
	if continuousActions {
		act = env.NewBoundedContinuous(
			mat.NewVecDense(1, []float64{-1.0}),
			mat.NewVecDense(1, []float64{1.0}),
		)
	}
	return env.NewDescription(string(Cartpole), obs, act)
}

// CreatePendulum returns the description of the Pendulum environment:
// cos(θ), sin(θ), and angular velocity observations with a torque
// action.
func CreatePendulum(continuousActions bool) env.Environment {
	obs := env.NewBoundedContinuous(
		mat.NewVecDense(3, []float64{-1.0, -1.0, -8.0}),
		mat.NewVecDense(3, []float64{1.0, 1.0, 8.0}),
	)

	var act env.Space = env.NewDiscrete(3)
	if continuousActions {
		act = env.NewBoundedContinuous(
			mat.NewVecDense(1, []float64{-PendulumMaxTorque}),
			mat.NewVecDense(1, []float64{PendulumMaxTorque}),
		)
	}
	return env.NewDescription(string(Pendulum), obs, act)
}

// CreatePong returns the description of a pixel-observation Pong
// environment with stacked greyscale frames
func CreatePong() env.Environment {
	obs := env.NewContinuous(PongHeight, PongWidth, PongChannels)
	return env.NewDescription(string(Pong), obs, env.NewDiscrete(PongActions))
}
