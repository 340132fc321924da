package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 10, 4)

	p.Increment()
	p.Display()
	if !strings.Contains(out.String(), "25.00%") {
		t.Errorf("want 25%% progress, have %q", out.String())
	}

	for i := 0; i < 10; i++ {
		p.Increment()
	}
	if p.Progress() != 1 {
		t.Errorf("progress should not exceed 1, have %v", p.Progress())
	}

	out.Reset()
	p.Close()
	if !strings.Contains(out.String(), "100.00%") ||
		!strings.HasSuffix(out.String(), "\n") {
		t.Errorf("want completed progress bar, have %q", out.String())
	}
	if n := strings.Count(out.String(), "█"); n != 10 {
		t.Errorf("want 10 filled characters, have %v", n)
	}
}
