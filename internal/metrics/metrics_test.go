package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"formrestyle/internal/patch"
)

func TestObserveCountsStatusesAndSteps(t *testing.T) {
	m := New()
	m.Observe(patch.Outcome{Status: patch.StatusPatched, Changed: []string{"inputs", "root-variables"}, Duration: time.Millisecond})
	m.Observe(patch.Outcome{Status: patch.StatusPatched, Changed: []string{"inputs"}, Duration: time.Millisecond})
	m.Observe(patch.Outcome{Status: patch.StatusMissing})
	m.Observe(patch.Outcome{Status: patch.StatusUnchanged})

	if got := testutil.ToFloat64(m.Files.WithLabelValues("patched")); got != 2 {
		t.Fatalf("expected 2 patched, got %v", got)
	}
	if got := testutil.ToFloat64(m.Files.WithLabelValues("missing")); got != 1 {
		t.Fatalf("expected 1 missing, got %v", got)
	}
	if got := testutil.ToFloat64(m.StepChanges.WithLabelValues("inputs")); got != 2 {
		t.Fatalf("expected inputs step counted twice, got %v", got)
	}
	if got := testutil.CollectAndCount(m.FileDuration); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
	count, err := testutil.GatherAndCount(m.Gatherer(), "formrestyle_files_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 status series, got %d", count)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(patch.Outcome{Status: patch.StatusPatched, Changed: []string{"inputs"}})
	path := filepath.Join(t.TempDir(), "formrestyle.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	// #nosec G304 -- test-controlled path under TempDir.
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `formrestyle_files_total{status="patched"} 1`) {
		t.Fatalf("expected patched counter in textfile, got:\n%s", b)
	}
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
