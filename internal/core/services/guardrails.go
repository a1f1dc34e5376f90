package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

var (
	citationMarker = regexp.MustCompile(`\[\d+\]`)
	ssnPattern     = regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)
)

// EvaluateGuardrails checks a rendered summary for emptiness, citation density
// and PII. Failures are reported as violations, never returned as errors.
func EvaluateGuardrails(summary string, citations []domain.Citation, mode domain.Mode) domain.GuardrailReport {
	report := domain.GuardrailReport{Violations: []domain.Violation{}}

	if strings.TrimSpace(summary) == "" {
		report.Violations = append(report.Violations, domain.Violation{
			Code:    domain.ViolationEmptySummary,
			Message: "Summary is empty",
		})
	}

	markers := len(citationMarker.FindAllStringIndex(summary, -1))
	report.CitationDensity = float64(len(citations)) / float64(max(1, markers))

	floor := mode.Role.Profile().MinCitationDensity
	if report.CitationDensity < floor {
		report.Violations = append(report.Violations, domain.Violation{
			Code:    domain.ViolationLowCitationDensity,
			Message: fmt.Sprintf("Citation density %.2f is below the %s minimum of %.2f", report.CitationDensity, mode.Role, floor),
		})
	}

	if ssnPattern.MatchString(summary) {
		report.Violations = append(report.Violations, domain.Violation{
			Code:    domain.ViolationPIIDetected,
			Message: "Summary contains a pattern that looks like a US social security number",
		})
	}

	return report
}
