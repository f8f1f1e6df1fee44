package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/walteh/waclone/pkg/rules"
	"github.com/walteh/waclone/pkg/runner"
)

// successRate formats the succeeded/found ratio, "N/A" for an empty
// category.
func successRate(result runner.CategoryResult) string {
	if result.Found == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(result.Succeeded)/float64(result.Found)*100)
}

// 📊 RenderSummaryTable renders the end-of-run summary as a terminal table.
func RenderSummaryTable(result *runner.Result) error {
	data := pterm.TableData{
		{"File Type", "Total Files", "Processed", "Success Rate"},
	}
	for _, category := range rules.Categories() {
		cr := result.Category(category)
		data = append(data, []string{
			strings.ToUpper(category.String()),
			fmt.Sprintf("%d", cr.Found),
			fmt.Sprintf("%d", cr.Succeeded),
			successRate(cr),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

// 📊 WriteSummary writes the plain-text summary used off-terminal.
func WriteSummary(w io.Writer, result *runner.Result) {
	fmt.Fprintln(w, "Operation Summary:")
	for _, category := range rules.Categories() {
		cr := result.Category(category)
		fmt.Fprintf(w, "  %s: %d/%d files processed (%s)\n",
			strings.ToUpper(category.String()), cr.Succeeded, cr.Found, successRate(cr))
	}
}
