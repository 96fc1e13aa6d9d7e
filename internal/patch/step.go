package patch

import (
	"regexp"
	"strings"
)

// Step is one named text transformation. Apply must return its input
// unchanged when it has nothing to do.
type Step interface {
	Name() string
	Apply(content string) string
}

// InsertAfterLiteral appends Block after every occurrence of Anchor unless
// Marker is already present.
type InsertAfterLiteral struct {
	Label  string
	Marker string
	Anchor string
	Block  string
}

func (s InsertAfterLiteral) Name() string { return s.Label }

func (s InsertAfterLiteral) Apply(content string) string {
	if strings.Contains(content, s.Marker) {
		return content
	}
	return strings.ReplaceAll(content, s.Anchor, s.Anchor+"\n"+s.Block)
}

// InsertAfterMatch locates the first match of Pattern and appends Block after
// every occurrence of that matched text, unless Marker is already present.
type InsertAfterMatch struct {
	Label   string
	Marker  string
	Pattern *regexp.Regexp
	Block   string
}

func (s InsertAfterMatch) Name() string { return s.Label }

func (s InsertAfterMatch) Apply(content string) string {
	if strings.Contains(content, s.Marker) {
		return content
	}
	match := s.Pattern.FindString(content)
	if match == "" {
		return content
	}
	return strings.ReplaceAll(content, match, match+"\n"+s.Block)
}

// ReplaceAll swaps every match of Pattern for the literal Block.
type ReplaceAll struct {
	Label   string
	Pattern *regexp.Regexp
	Block   string
}

func (s ReplaceAll) Name() string { return s.Label }

func (s ReplaceAll) Apply(content string) string {
	return s.Pattern.ReplaceAllLiteralString(content, s.Block)
}

// Substitute rewrites every match of Pattern using a $1-style Template.
type Substitute struct {
	Label    string
	Pattern  *regexp.Regexp
	Template string
}

func (s Substitute) Name() string { return s.Label }

func (s Substitute) Apply(content string) string {
	return s.Pattern.ReplaceAllString(content, s.Template)
}

// Pipeline runs steps strictly in order.
type Pipeline []Step

// Apply returns the transformed content and the names of the steps that changed it.
func (p Pipeline) Apply(content string) (string, []string) {
	var changed []string
	for _, step := range p {
		next := step.Apply(content)
		if next != content {
			changed = append(changed, step.Name())
		}
		content = next
	}
	return content, changed
}

// Names lists the step names in execution order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, step := range p {
		names[i] = step.Name()
	}
	return names
}
