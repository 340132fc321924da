package experiment

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/replaykit/buffer/gae"
	"github.com/samuelfneumann/replaykit/environment"
	"github.com/samuelfneumann/replaykit/expreplay"
	"github.com/samuelfneumann/replaykit/replaybuffer"
	"github.com/samuelfneumann/replaykit/utils/floatutils"
	"github.com/samuelfneumann/replaykit/utils/intutils"
	"github.com/samuelfneumann/replaykit/utils/progressbar"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultLambda is the λ used for GAE(λ) when filling on-policy
// buffers
const DefaultLambda = 0.95

// Filler stores random transitions drawn from the spaces of an
// environment into a buffer. Only the fields of the buffer's Config
// are generated.
//
// If the Config has an advantage field, the Filler generates on-policy
// rollouts whose advantages and rewards-to-go are computed with
// GAE(λ) at the end of each episode.
//
// If Progress is not nil, it is incremented at each step and displayed
// at the end of each episode.
type Filler struct {
	Progress *progressbar.ProgressBar

	env           environment.Environment
	config        expreplay.Config
	discount      float64
	lambda        float64
	episodeLength int

	src rand.Source
	rng *rand.Rand
}

// NewFiller returns a new Filler. Episodes are cut off after
// episodeLength steps.
func NewFiller(e environment.Environment, c expreplay.Config,
	discount float64, episodeLength int, seed uint64) *Filler {
	if episodeLength < 1 {
		panic(fmt.Sprintf("newFiller: episode length must be positive "+
			"\n\twant(>0) \n\thave(%v)", episodeLength))
	}
	src := rand.NewSource(seed)

	return &Filler{
		env:           e,
		config:        c,
		discount:      discount,
		lambda:        DefaultLambda,
		episodeLength: episodeLength,
		src:           src,
		rng:           rand.New(src),
	}
}

// Fill stores steps transitions in the buffer
func (f *Filler) Fill(b expreplay.Buffer, steps int) error {
	var err error
	if _, ok := f.config.Fields[replaybuffer.Adv]; ok {
		err = f.fillOnPolicy(b, steps)
	} else {
		err = f.fillOffPolicy(b, steps)
	}

	if f.Progress != nil {
		f.Progress.Close()
	}
	return err
}

// report reports a completed step to the progress bar
func (f *Filler) report(done bool) {
	if f.Progress == nil {
		return
	}
	f.Progress.Increment()
	if done {
		f.Progress.Display()
	}
}

func (f *Filler) fillOffPolicy(b expreplay.Buffer, steps int) error {
	obs := f.observation()
	for step := 0; step < steps; step++ {
		next := f.observation()
		done := (step+1)%f.episodeLength == 0

		t := f.transition(obs, next, done)
		t[replaybuffer.Rew] = []float64{f.uniform(-1, 1)}
		if err := b.Store(t); err != nil {
			return fmt.Errorf("fill: %v", err)
		}

		f.report(done)

		obs = next
		if done {
			if err := b.EndEpisode(); err != nil {
				return fmt.Errorf("fill: %v", err)
			}
			obs = f.observation()
		}
	}
	return b.EndEpisode()
}

func (f *Filler) fillOnPolicy(b expreplay.Buffer, steps int) error {
	var trajectory []expreplay.Transition
	var rews, vals []float64

	finish := func(lastVal float64) error {
		adv, ret, err := gae.Compute(rews, vals, lastVal, f.discount,
			f.lambda)
		if err != nil {
			return fmt.Errorf("fill: %v", err)
		}
		gae.Normalize(adv)

		for i, t := range trajectory {
			t[replaybuffer.Ret] = []float64{ret[i]}
			t[replaybuffer.Adv] = []float64{adv[i]}
			if err := b.Store(t); err != nil {
				return fmt.Errorf("fill: %v", err)
			}
		}

		trajectory, rews, vals = nil, nil, nil
		return nil
	}

	obs := f.observation()
	for step := 0; step < steps; step++ {
		next := f.observation()
		done := (step+1)%f.episodeLength == 0

		t := f.transition(obs, next, done)
		t[replaybuffer.Logp] = []float64{f.uniform(-2, 0)}
		trajectory = append(trajectory, t)
		rews = append(rews, f.uniform(-1, 1))
		vals = append(vals, f.uniform(-1, 1))
		f.report(done)

		obs = next
		if done {
			if err := finish(0); err != nil {
				return err
			}
			obs = f.observation()
		}
	}

	// Bootstrap a trajectory cut off by the end of filling
	if len(trajectory) > 0 {
		return finish(f.uniform(-1, 1))
	}
	return nil
}

// transition returns a transition with the observation, action, and
// terminal fields of the buffer set
func (f *Filler) transition(obs, next []float64,
	done bool) expreplay.Transition {
	terminal := 0.0
	if done {
		terminal = 1.0
	}

	t := expreplay.Transition{
		replaybuffer.Obs:  obs,
		replaybuffer.Act:  f.sample(f.env.ActionSpace(), f.fieldSize(replaybuffer.Act)),
		replaybuffer.Done: {terminal},
		replaybuffer.Mask: {1 - terminal},
	}
	if _, ok := f.config.Fields[replaybuffer.NextObs]; ok {
		t[replaybuffer.NextObs] = next
	}
	if _, ok := f.config.Fields[replaybuffer.Encode]; ok {
		t[replaybuffer.Encode] = []float64{0}
	}
	return t
}

func (f *Filler) observation() []float64 {
	return f.sample(f.env.ObservationSpace(), f.fieldSize(replaybuffer.Obs))
}

func (f *Filler) fieldSize(name string) int {
	return f.config.Fields[name].Size()
}

// sample draws size values from a space. Values beyond the size of
// the space, such as an absorbing state marker, are left at 0.
//
// Pixel spaces are sampled in [0, 255] and other unbounded dimensions
// in [-1, 1]. Dimensions with a single infinite bound are sampled in
// the same way and clipped to the finite bound.
func (f *Filler) sample(space environment.Space, size int) []float64 {
	values := make([]float64, size)

	switch s := space.(type) {
	case *environment.DiscreteSpace:
		if s != nil {
			space = *s
		}
	case *environment.ContinuousSpace:
		if s != nil {
			space = *s
		}
	}

	switch s := space.(type) {
	case environment.DiscreteSpace:
		values[0] = float64(f.rng.Intn(s.N))

	case environment.ContinuousSpace:
		n := intutils.Min(size, intutils.Prod(s.Shape...))

		for i := 0; i < n; i++ {
			min, max := -1.0, 1.0
			if len(s.Shape) == 3 {
				min, max = 0, math.MaxUint8
			}
			if !s.Bounded() {
				values[i] = f.uniform(min, max)
				continue
			}

			lo, hi := s.LowerBound.AtVec(i), s.UpperBound.AtVec(i)
			if !math.IsInf(lo, 0) && !math.IsInf(hi, 0) {
				values[i] = f.uniform(lo, hi)
			} else {
				values[i] = floatutils.Clip(f.uniform(min, max), lo, hi)
			}
		}
	}

	return values
}

func (f *Filler) uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: f.src}.Rand()
}
