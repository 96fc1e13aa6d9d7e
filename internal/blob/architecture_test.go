package blob

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

type importRule struct {
	// forbidden import prefix
	target string
	// packages allowed to import it, by path prefix
	allowed []string
}

var importRules = []importRule{
	{target: "formrestyle/internal/infra/blob", allowed: []string{"formrestyle/internal/blob", "formrestyle/internal/infra/blob"}},
	{target: "github.com/aws/aws-sdk-go-v2", allowed: []string{"formrestyle/internal/infra/blob/s3"}},
	{target: "modernc.org/sqlite", allowed: []string{"formrestyle/internal/journal"}},
	{target: "github.com/jackc/pgx", allowed: []string{"formrestyle/internal/journal"}},
}

// TestStorageImportsStayBehindFacades loads every package in the module and
// checks that drivers and SDKs are only imported by the layers that wrap them.
func TestStorageImportsStayBehindFacades(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "formrestyle/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages loaded")
	}

	var violations []string
	for _, pkg := range pkgs {
		for importPath := range pkg.Imports {
			for _, rule := range importRules {
				if hasPathPrefix(importPath, rule.target) && !allowedFor(pkg.PkgPath, rule.allowed) {
					violations = append(violations, pkg.PkgPath+": "+importPath)
				}
			}
		}
	}
	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("found %d forbidden imports:\n%s", len(violations), strings.Join(violations, "\n"))
	}
}

func allowedFor(pkgPath string, allowed []string) bool {
	for _, a := range allowed {
		if hasPathPrefix(pkgPath, a) {
			return true
		}
	}
	return false
}

func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
