package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `{
	"Seed": 1,
	"AgentConf": {"Type": "SAC", "MemoryCapacity": 500, "Discount": 0.9},
	"EnvConf": {"Environment": "Pendulum", "ContinuousActions": true},
	"Buffer": {"UseNStep": true, "NStepLength": 4}
}`

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	root := RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))

	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDescribe(t *testing.T) {
	out := execute(t, "describe", "--config", writeConfig(t))

	for _, want := range []string{"Variant: Plain", "Capacity: 500",
		"next_obs", "N-step: length 4, gamma 0.9"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, have: \n%v", want, out)
		}
	}
}

func TestFill(t *testing.T) {
	out := execute(t, "fill", "--config", writeConfig(t), "--steps", "50",
		"--batch-size", "8", "--episode-length", "10")

	for _, want := range []string{"Stored: 50 / 500", "Sampled indices:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, have: \n%v", want, out)
		}
	}
	if strings.Contains(out, "Importance weights:") {
		t.Error("uniform buffers should not print importance weights")
	}
}

func TestAgents(t *testing.T) {
	out := execute(t, "agents")

	for _, want := range []string{"DQN", "OffPolicy", "PPO", "OnPolicy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, have: \n%v", want, out)
		}
	}
}
