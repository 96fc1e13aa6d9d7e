package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInfraImportForbidden(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"formrestyle/internal/infra/blob/fs", true},
		{"formrestyle/internal/blob", false},
		{"formrestyle/internal/patch", false},
	}
	for _, c := range cases {
		if got := InfraImportForbidden(c.in); got != c.want {
			t.Fatalf("InfraImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestDriverImportForbidden(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"github.com/aws/aws-sdk-go-v2/service/s3", true},
		{"github.com/jackc/pgx/v5/stdlib", true},
		{"modernc.org/sqlite", true},
		{"database/sql", true},
		{"regexp", false},
		{"github.com/google/uuid", false},
	}
	for _, c := range cases {
		if got := DriverImportForbidden(c.in); got != c.want {
			t.Fatalf("DriverImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func writeSource(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestAssertNoDirectImportsPasses(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "x.go", "package tmp\nimport \"fmt\"\nfunc X(){fmt.Println(1)}")
	writeSource(t, dir, "x_test.go", "package tmp\nimport _ \"database/sql\"\n")
	AssertNoDirectImports(t, dir, DriverImportForbidden, "test files are ignored")
}

type recordingT struct {
	msg string
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.msg = format
	if len(args) > 1 {
		if s, ok := args[1].(string); ok {
			r.msg = s
		}
	}
}

func TestDirectViolationsAreReported(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.go", "package tmp\nimport _ \"modernc.org/sqlite\"\n")
	viols, err := directImportViolations(dir, DriverImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || viols[0] != "modernc.org/sqlite (in bad.go)" {
		t.Fatalf("unexpected violations %v", viols)
	}
	rec := &recordingT{}
	failIfDirectViolations(rec, "drivers", viols)
	if !strings.Contains(rec.msg, "modernc.org/sqlite") {
		t.Fatalf("expected violation to be reported, got %q", rec.msg)
	}
}

func TestDirectImportViolationsMissingDir(t *testing.T) {
	if _, err := directImportViolations(filepath.Join(t.TempDir(), "missing"), InfraImportForbidden); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
