// Package replaybuffer selects and constructs the experience replay
// buffer an agent needs, based on the kind of agent and the
// observation and action spaces of its environment.
package replaybuffer

import (
	"fmt"
	"io"
	"strings"

	"github.com/samuelfneumann/replaykit/agent"
	"github.com/samuelfneumann/replaykit/environment"
	"github.com/samuelfneumann/replaykit/expreplay"
)

// Configurator selects buffers with BuildPlan and constructs them with
// a Factory. If Warn is not nil, options which are ignored for an
// agent are reported to it.
type Configurator struct {
	Factory expreplay.Factory
	Warn    io.Writer
}

// New returns a new Configurator which constructs buffers with the
// argument Factory
func New(f expreplay.Factory) *Configurator {
	return &Configurator{Factory: f}
}

// Configure returns the buffer that should store the experience of
// agent a in environment e. If either a or e is nil, Configure returns
// a nil buffer and a nil error. See BuildPlan.
//
// No buffer is constructed if selection fails.
func (c *Configurator) Configure(a agent.Agent, e environment.Environment,
	opts Options) (expreplay.Buffer, error) {
	plan, err := BuildPlan(a, e, opts)
	if err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}
	if plan == nil {
		return nil, nil
	}

	if a.Kind() == agent.OnPolicy {
		c.warnIgnored(opts.ignoredOnPolicy())
	}

	factory := c.Factory
	if factory == nil {
		factory = expreplay.NewBackend(0)
	}

	buffer, err := plan.Build(factory)
	if err != nil {
		return nil, fmt.Errorf("configure: could not construct %v buffer: "+
			"%w", plan.Variant, err)
	}
	return buffer, nil
}

func (c *Configurator) warnIgnored(ignored []string) {
	if c.Warn == nil || len(ignored) == 0 {
		return
	}
	fmt.Fprintf(c.Warn, "configure: ignoring %v for on-policy agent\n",
		strings.Join(ignored, ", "))
}

// Configure returns the buffer that should store the experience of
// agent a in environment e, constructed by a default expreplay.Backend.
// See Configurator.Configure.
func Configure(a agent.Agent, e environment.Environment,
	opts Options) (expreplay.Buffer, error) {
	return New(expreplay.NewBackend(0)).Configure(a, e, opts)
}
