package writer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/insightdelivered/statement-kpi-extractor/internal/ratios"
)

// TextWriter writes a human-readable summary of an analysis with Spanish
// number formatting.
type TextWriter struct {
	// Details includes the detail breakdowns of each statement.
	Details bool
}

// WriteToFile writes the summary to a text file at the given path.
func (w *TextWriter) WriteToFile(path string, a *models.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, a)
}

// percentIndicators are the indicators expressed as percentages.
var percentIndicators = map[string]bool{
	ratios.GrossMargin:    true,
	ratios.EBITDAMargin:   true,
	ratios.EBITMargin:     true,
	ratios.NetMargin:      true,
	ratios.PersonnelRatio: true,
}

// percentRatios are the balance ratios expressed as percentages.
var percentRatios = map[string]bool{
	ratios.ROE:       true,
	ratios.ROA:       true,
	ratios.NetMargin: true,
}

// Write writes the summary to the given writer.
func (w *TextWriter) Write(out io.Writer, a *models.Analysis) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "Analysis %s\n", a.ID)
	fmt.Fprintf(tw, "Years: %s\n", strings.Join(a.Years, ", "))
	fmt.Fprintf(tw, "Balance sheet: %s\n", yesNo(a.HasBalance))

	if a.PnL != nil {
		writeSection(tw, "Profit and loss", a.Years, a.PnL.KPIs, func(_ string, v float64) string {
			return FormatCurrency(v, 0)
		})
		if w.Details {
			writeDetails(tw, a.Years, a.PnL.Details)
		}
	}

	writeSection(tw, "Indicators", a.Years, transpose(a.Indicators), func(name string, v float64) string {
		switch {
		case percentIndicators[name]:
			return FormatPercentage(v, 1)
		case name == ratios.CostPerEuro:
			return FormatCurrency(v, 2)
		default:
			return FormatCurrency(v, 0)
		}
	})

	if len(a.Years) > 1 {
		writeSection(tw, "Year over year", a.Years[:len(a.Years)-1], a.Variations, func(_ string, v float64) string {
			return FormatVariation(v, 1)
		})
	}

	if a.HasBalance && a.Balance != nil {
		writeSection(tw, "Balance sheet", a.Years, a.Balance.KPIs, func(_ string, v float64) string {
			return FormatCurrency(v, 0)
		})
		if w.Details {
			writeDetails(tw, a.Years, a.Balance.Details)
		}
		writeSection(tw, "Financial ratios", a.Years, transpose(a.Ratios), func(name string, v float64) string {
			switch {
			case percentRatios[name]:
				return FormatPercentage(v, 1)
			case name == ratios.WorkingCapital:
				return FormatCurrency(v, 0)
			default:
				return FormatRatio(v)
			}
		})
	}

	if len(a.Warnings) > 0 {
		fmt.Fprintln(tw, "\nWarnings")
		for _, warning := range a.Warnings {
			fmt.Fprintf(tw, "  - %s\n", warning)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// writeSection writes one table with a row per name and a column per year.
func writeSection(tw *tabwriter.Writer, title string, years []string, rows map[string]models.Series, format func(name string, v float64) string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(tw, "\n%s\n", title)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(years, "\t"))
	for _, name := range sortedKeys(rows) {
		cells := make([]string, 0, len(years))
		for _, y := range years {
			cells = append(cells, format(name, rows[name][y]))
		}
		fmt.Fprintf(tw, "  %s\t%s\t\n", name, strings.Join(cells, "\t"))
	}
}

func writeDetails(tw *tabwriter.Writer, years []string, details map[string]models.DetailMap) {
	names := make([]string, 0, len(details))
	for name := range details {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeSection(tw, name, years, details[name], func(_ string, v float64) string {
			return FormatCurrency(v, 0)
		})
	}
}

// transpose turns year -> name -> value into name -> year -> value.
func transpose(byYear map[string]map[string]float64) map[string]models.Series {
	out := make(map[string]models.Series)
	for year, values := range byYear {
		for name, v := range values {
			if out[name] == nil {
				out[name] = make(models.Series)
			}
			out[name][year] = v
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
