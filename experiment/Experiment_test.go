package experiment

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samuelfneumann/replaykit/agent"
	"github.com/samuelfneumann/replaykit/environment"
	"github.com/samuelfneumann/replaykit/environment/envconfig"
	"github.com/samuelfneumann/replaykit/expreplay"
	"github.com/samuelfneumann/replaykit/replaybuffer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"
)

const cartpoleConfig = `{
	"Seed": 7,
	"AgentConf": {"Type": "DQN", "MemoryCapacity": 1000, "Discount": 0.99},
	"EnvConf": {"Environment": "Cartpole"},
	"Buffer": {"UsePrioritized": true, "UseNStep": true, "NStepLength": 3}
}`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(cartpoleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	if c.Seed != 7 || c.AgentConf.Type != agent.DQN ||
		c.EnvConf.Environment != envconfig.Cartpole {
		t.Errorf("decoded config: have %+v", c)
	}
	if !c.Buffer.UsePrioritized || !c.Buffer.UseNStep ||
		c.Buffer.NStepLength != 3 {
		t.Errorf("decoded options: have %+v", c.Buffer)
	}

	plan, err := c.Plan()
	if err != nil {
		t.Fatal(err)
	}
	if plan.Variant != replaybuffer.Prioritized || plan.Config.NStep == nil {
		t.Errorf("plan: want prioritized n-step buffer, have %v", plan)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"Syntax":       `{"Seed": }`,
		"UnknownField": `{"Seed": 1, "Batch": 32}`,
	}

	for name, config := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(config)); err == nil {
				t.Error("want error, have nil")
			}
		})
	}
}

func TestRunOffPolicy(t *testing.T) {
	c, err := Decode(strings.NewReader(cartpoleConfig))
	if err != nil {
		t.Fatal(err)
	}

	var progress bytes.Buffer
	result, err := c.Run(100, 16, 10, nil, &progress)
	if err != nil {
		t.Fatal(err)
	}

	if result.Stored != 100 {
		t.Errorf("stored: want(100) have(%v)", result.Stored)
	}
	if result.Batch.Len() != 16 || len(result.Batch.Weights) != 16 {
		t.Errorf("batch: want 16 transitions and weights, have %v and %v",
			result.Batch.Len(), len(result.Batch.Weights))
	}
	if !strings.Contains(progress.String(), "100.00%") {
		t.Errorf("progress: want completed progress bar, have %q",
			progress.String())
	}
}

func TestRunPixels(t *testing.T) {
	c := Config{
		Seed:      1,
		AgentConf: agent.Config{Type: agent.DQN, MemoryCapacity: 50, Discount: 0.99},
		EnvConf:   envconfig.NewConfig(envconfig.Pong, false),
	}

	result, err := c.Run(60, 4, 20, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.Stored != 50 {
		t.Errorf("stored: want(50) have(%v)", result.Stored)
	}

	obs := result.Batch.Fields[replaybuffer.Obs]
	if obs.Dtype() != tensor.Uint8 {
		t.Errorf("obs dtype: want(%v) have(%v)", tensor.Uint8, obs.Dtype())
	}
	want := tensor.Shape{4, 84, 84, 4}
	if !obs.Shape().Eq(want) {
		t.Errorf("obs shape: want(%v) have(%v)", want, obs.Shape())
	}
}

func TestRunOnPolicyWarns(t *testing.T) {
	c := Config{
		Seed:      3,
		AgentConf: agent.Config{Type: agent.PPO, Horizon: 32, Discount: 0.99},
		EnvConf:   envconfig.NewConfig(envconfig.Pendulum, true),
		Buffer:    replaybuffer.Options{UsePrioritized: true},
	}

	var warnings bytes.Buffer
	result, err := c.Run(32, 8, 10, &warnings, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(warnings.String(), "prioritized replay") {
		t.Errorf("warning: want prioritized replay warning, have %q",
			warnings.String())
	}
	if result.Plan.Variant != replaybuffer.Plain {
		t.Errorf("variant: want(%v) have(%v)", replaybuffer.Plain,
			result.Plan.Variant)
	}
	if result.Batch.Weights != nil {
		t.Error("on-policy batches should not have weights")
	}
}

func TestFillOnPolicy(t *testing.T) {
	e := envconfig.CreateCartpole(false)
	a := agent.NewOnPolicy(64, 0.99)
	plan, err := replaybuffer.BuildPlan(a, e, replaybuffer.Options{})
	if err != nil {
		t.Fatal(err)
	}

	buffer, err := plan.Build(expreplay.NewBackend(1))
	if err != nil {
		t.Fatal(err)
	}

	filler := NewFiller(e, plan.Config, a.Discount(), 20, 1)
	if err := filler.Fill(buffer, 64); err != nil {
		t.Fatal(err)
	}
	if buffer.Len() != 64 {
		t.Fatalf("len: want(64) have(%v)", buffer.Len())
	}

	batch, err := buffer.All()
	if err != nil {
		t.Fatal(err)
	}

	done := batch.Fields[replaybuffer.Done].Data().([]float32)
	for i, d := range done {
		want := float32(0)
		if i == 19 || i == 39 || i == 59 {
			want = 1
		}
		if d != want {
			t.Errorf("done %v: want(%v) have(%v)", i, want, d)
		}
	}

	// Advantages are normalized per episode
	adv := batch.Fields[replaybuffer.Adv].Data().([]float32)
	episode := make([]float64, 20)
	for i := range episode {
		episode[i] = float64(adv[i])
	}
	if mean := stat.Mean(episode, nil); mean > 1e-5 || mean < -1e-5 {
		t.Errorf("advantage mean: want(0) have(%v)", mean)
	}

	act := batch.Fields[replaybuffer.Act]
	if act.Dtype() != tensor.Int32 {
		t.Errorf("act dtype: want(%v) have(%v)", tensor.Int32, act.Dtype())
	}
	for _, action := range act.Data().([]int32) {
		if action < 0 || action > 1 {
			t.Errorf("action %v out of range [0, 2)", action)
		}
	}
}

func TestFillAbsorbingState(t *testing.T) {
	e := envconfig.CreatePendulum(true)
	a := agent.NewOffPolicy(20, 0.99)
	opts := replaybuffer.Options{UseAbsorbingState: true}
	plan, err := replaybuffer.BuildPlan(a, e, opts)
	if err != nil {
		t.Fatal(err)
	}

	buffer, err := plan.Build(expreplay.NewBackend(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := NewFiller(e, plan.Config, a.Discount(), 5, 1).Fill(buffer,
		10); err != nil {
		t.Fatal(err)
	}

	batch, err := buffer.All()
	if err != nil {
		t.Fatal(err)
	}

	obs := batch.Fields[replaybuffer.Obs].Data().([]float32)
	for row := 0; row < batch.Len(); row++ {
		values := obs[row*4 : (row+1)*4]
		if values[3] != 0 {
			t.Errorf("row %v: absorbing marker should be 0, have %v", row,
				values[3])
		}
		if values[2] < -8 || values[2] > 8 {
			t.Errorf("row %v: angular velocity %v out of bounds", row,
				values[2])
		}
	}

	act := batch.Fields[replaybuffer.Act].Data().([]float32)
	for _, torque := range act {
		if torque < -envconfig.PendulumMaxTorque ||
			torque > envconfig.PendulumMaxTorque {
			t.Errorf("torque %v out of bounds", torque)
		}
	}
}

func TestFillPointerSpaces(t *testing.T) {
	obs := environment.NewBoundedContinuous(
		mat.NewVecDense(2, []float64{10, 20}),
		mat.NewVecDense(2, []float64{11, 21}),
	)
	act := environment.NewDiscrete(3)
	e := environment.NewDescription("Pointers", &obs, &act)

	a := agent.NewOffPolicy(10, 0.99)
	plan, err := replaybuffer.BuildPlan(a, e, replaybuffer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	buffer, err := plan.Build(expreplay.NewBackend(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := NewFiller(e, plan.Config, a.Discount(), 5, 1).Fill(buffer,
		5); err != nil {
		t.Fatal(err)
	}

	batch, err := buffer.All()
	if err != nil {
		t.Fatal(err)
	}

	values := batch.Fields[replaybuffer.Obs].Data().([]float32)
	for i, v := range values {
		lo := float32(10 + 10*(i%2))
		if v < lo || v > lo+1 {
			t.Errorf("observation value %v not in [%v, %v]", v, lo, lo+1)
		}
	}
}
