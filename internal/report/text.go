package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cambsdata/crimescope/internal/model"
)

// FormatSummaryText renders the human-readable summary report. Counts use
// thousands separators.
func FormatSummaryText(s *model.Summary) string {
	p := message.NewPrinter(language.BritishEnglish)
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("CRIME ANALYSIS - SUMMARY REPORT\n")
	b.WriteString(rule + "\n\n")

	p.Fprintf(&b, "Total crimes analyzed: %d\n", s.TotalProcessed)
	p.Fprintf(&b, "Rows rejected at ingestion: %d\n", s.TotalRejected)
	if !s.DateStart.IsZero() {
		fmt.Fprintf(&b, "Date range: %s to %s\n", model.FormatMonth(s.DateStart), model.FormatMonth(s.DateEnd))
	}
	b.WriteString("\n")

	b.WriteString("Record usability by dimension:\n")
	p.Fprintf(&b, "  Crime-type aggregation: %d usable, %d excluded\n", s.TypeUsable, s.ExcludedFromType())
	p.Fprintf(&b, "  Geospatial output:      %d usable, %d excluded\n", s.GeoUsable, s.ExcludedFromGeo())
	p.Fprintf(&b, "  Area aggregation:       %d usable, %d excluded\n", s.AreaUsable, s.ExcludedFromArea())
	b.WriteString("\n")

	if s.MostCommonCrime != "" {
		p.Fprintf(&b, "Most common crime: %s (%d)\n", s.MostCommonCrime, s.MostCommonCrimeCount)
	}
	if s.MostAffectedArea != "" {
		p.Fprintf(&b, "Highest crime area: %s (%d)\n", s.MostAffectedArea, s.MostAffectedAreaN)
	}
	if s.SafestArea != "" {
		p.Fprintf(&b, "Safest area: %s (%d)\n", s.SafestArea, s.SafestAreaN)
	}
	if s.MostCommonOutcome != "" {
		p.Fprintf(&b, "Most common outcome: %s (%d)\n", s.MostCommonOutcome, s.MostCommonOutcomeN)
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	return b.String()
}

// WriteSummaryText writes the textual summary report to path.
func WriteSummaryText(path string, s *model.Summary) error {
	if err := os.WriteFile(path, []byte(FormatSummaryText(s)), 0o644); err != nil {
		return eris.Wrapf(err, "report: write summary %s", path)
	}
	return nil
}
