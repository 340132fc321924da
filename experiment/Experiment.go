// Package experiment implements run configurations which describe an
// agent, an environment, and the options used to select the agent's
// replay buffer, along with functionality for driving the selected
// buffer with synthetic experience.
package experiment

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/samuelfneumann/replaykit/agent"
	"github.com/samuelfneumann/replaykit/environment/envconfig"
	"github.com/samuelfneumann/replaykit/expreplay"
	"github.com/samuelfneumann/replaykit/replaybuffer"
	"github.com/samuelfneumann/replaykit/utils/progressbar"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const progressWidth = 40

// Config represents a configuration of an experiment. Configs are JSON
// serializable.
type Config struct {
	Seed      uint64
	AgentConf agent.Config
	EnvConf   envconfig.Config
	Buffer    replaybuffer.Options
}

// Load reads a JSON Config from the file at path
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not open config: %v", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a JSON Config from r
func Decode(r io.Reader) (Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode: could not decode config: %v",
			err)
	}
	return c, nil
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if err := c.AgentConf.Validate(); err != nil {
		return fmt.Errorf("validate: agent: %v", err)
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: environment: %v", err)
	}
	return nil
}

// Plan returns the replay buffer Plan selected for the Config
func (c Config) Plan() (*replaybuffer.Plan, error) {
	a, err := c.AgentConf.CreateAgent()
	if err != nil {
		return nil, fmt.Errorf("plan: %v", err)
	}
	e, err := c.EnvConf.Create()
	if err != nil {
		return nil, fmt.Errorf("plan: %v", err)
	}
	return replaybuffer.BuildPlan(a, e, c.Buffer)
}

// CreateBuffer constructs the replay buffer selected for the Config.
// Options that are ignored are reported to warn, if not nil.
func (c Config) CreateBuffer(warn io.Writer) (expreplay.Buffer, error) {
	a, err := c.AgentConf.CreateAgent()
	if err != nil {
		return nil, fmt.Errorf("createBuffer: %v", err)
	}
	e, err := c.EnvConf.Create()
	if err != nil {
		return nil, fmt.Errorf("createBuffer: %v", err)
	}

	configurator := replaybuffer.New(expreplay.NewBackend(c.Seed))
	configurator.Warn = warn
	return configurator.Configure(a, e, c.Buffer)
}

// Result summarizes a Run
type Result struct {
	Plan   replaybuffer.Plan
	Stored int // Number of transitions in the buffer after filling
	Batch  expreplay.Batch
}

// Run constructs the buffer selected for the Config, fills it with
// steps random transitions, and samples a single batch of batchSize
// transitions from it. Episodes are cut off after episodeLength steps.
//
// If the buffer is prioritized, the priorities of the sampled batch
// are updated with random TD errors. Ignored options are reported to
// warn and the progress of filling is printed to progress, if either
// is not nil.
func (c Config) Run(steps, batchSize, episodeLength int,
	warn, progress io.Writer) (Result, error) {
	plan, err := c.Plan()
	if err != nil {
		return Result{}, fmt.Errorf("run: %v", err)
	}

	buffer, err := c.CreateBuffer(warn)
	if err != nil {
		return Result{}, fmt.Errorf("run: %v", err)
	}

	e, err := c.EnvConf.Create()
	if err != nil {
		return Result{}, fmt.Errorf("run: %v", err)
	}

	filler := NewFiller(e, plan.Config, c.AgentConf.Discount, episodeLength,
		c.Seed)
	if progress != nil {
		filler.Progress = progressbar.New(progress, progressWidth, steps)
	}
	if err := filler.Fill(buffer, steps); err != nil {
		return Result{}, fmt.Errorf("run: %v", err)
	}

	batch, err := buffer.Sample(batchSize)
	if err != nil {
		return Result{}, fmt.Errorf("run: %v", err)
	}

	if prioritized, ok := buffer.(expreplay.PrioritizedBuffer); ok {
		tdErrors := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(c.Seed)}
		priorities := make([]float64, batch.Len())
		for i := range priorities {
			priorities[i] = math.Abs(tdErrors.Rand())
		}

		err := prioritized.UpdatePriorities(batch.Indices, priorities)
		if err != nil {
			return Result{}, fmt.Errorf("run: %v", err)
		}
	}

	return Result{Plan: *plan, Stored: buffer.Len(), Batch: batch}, nil
}
