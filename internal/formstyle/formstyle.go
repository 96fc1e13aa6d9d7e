// Package formstyle holds the restyle applied to the careers application
// forms: the fixed target list and the ordered substitution steps.
package formstyle

import (
	"regexp"
	"strings"

	"formrestyle/internal/patch"
)

// Targets are the forms patched by a run, in processing order.
var Targets = []string{
	"product-engineer.html",
	"enterprise-ae.html",
	"enterprise-product-engineer.html",
	"emerging-enterprise.html",
	"infrastructure-engineer.html",
	"research-engineer.html",
}

// cssSpace is the full Unicode whitespace set. RE2's \s covers only ASCII
// space, \t, \n, \f and \r.
const cssSpace = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// cssRule compiles p with every \s widened to cssSpace.
func cssRule(p string) *regexp.Regexp {
	return regexp.MustCompile(strings.ReplaceAll(p, `\s`, cssSpace))
}

// Rule patterns swallow the indentation in front of the selector so that a
// rewritten rule, which brings its own indent, matches itself on the next run.
var (
	labelRule           = cssRule(`label\s*\{[^}]*\}`)
	formContainer       = cssRule(`[ \t]*\.form-container\s*\{[^}]*\}`)
	inputs              = cssRule(`[ \t]*input,\s*textarea\s*\{[^}]*\}`)
	inputFocus          = cssRule(`[ \t]*input:focus,\s*textarea:focus\s*\{[^}]*\}`)
	inputFocusAnchor    = cssRule(`input:focus,\s*textarea:focus\s*\{[^}]*\}`)
	submitButton        = cssRule(`[ \t]*\.submit-btn\s*\{[^}]*\}`)
	submitButtonHover   = cssRule(`[ \t]*\.submit-btn:hover\s*\{[^}]*\}`)
	submitHoverAnchor   = cssRule(`\.submit-btn:hover\s*\{[^}]*\}`)
	questionSection     = cssRule(`[ \t]*\.question-section\s*\{[^}]*\}`)
	requiredLabel       = regexp.MustCompile(`<label for="([^"]+)">([^<]+) \*</label>`)
	requiredQuestionTag = regexp.MustCompile(`<div class="question-title">([^<]+): \*</div>`)
)

// Steps returns the restyle pipeline. Later steps rely on earlier ones: the
// hover rules are anchored on the focus and button rules rewritten before them.
func Steps() patch.Pipeline {
	return patch.Pipeline{
		patch.InsertAfterLiteral{Label: "root-variables", Marker: ":root {", Anchor: "<style>", Block: rootVariables},
		patch.InsertAfterMatch{Label: "required-asterisk", Marker: "label .required-asterisk", Pattern: labelRule, Block: requiredAsteriskRule},
		patch.ReplaceAll{Label: "form-container", Pattern: formContainer, Block: formContainerRule},
		patch.ReplaceAll{Label: "inputs", Pattern: inputs, Block: inputRule},
		patch.ReplaceAll{Label: "input-focus", Pattern: inputFocus, Block: inputFocusRule},
		patch.InsertAfterMatch{Label: "input-hover", Marker: "input:hover, textarea:hover", Pattern: inputFocusAnchor, Block: inputHoverRule},
		patch.ReplaceAll{Label: "submit-button", Pattern: submitButton, Block: submitButtonRule},
		patch.ReplaceAll{Label: "submit-button-hover", Pattern: submitButtonHover, Block: submitButtonHoverRule},
		patch.InsertAfterMatch{Label: "submit-button-active", Marker: ".submit-btn:active", Pattern: submitHoverAnchor, Block: submitButtonActiveRule},
		patch.ReplaceAll{Label: "question-section", Pattern: questionSection, Block: questionSectionRule},
		patch.Substitute{Label: "label-asterisks", Pattern: requiredLabel, Template: `<label for="${1}">${2}` + asteriskSpan + `</label>`},
		patch.Substitute{Label: "question-title-asterisks", Pattern: requiredQuestionTag, Template: `<div class="question-title">${1}:` + asteriskSpan + `</div>`},
	}
}
