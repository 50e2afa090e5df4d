package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// RenderSummary 以方框形式输出转换结果摘要
func RenderSummary(w io.Writer, resp *analysis.Response) {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Analysis " + resp.AnalysisID))
	sb.WriteByte('\n')

	if !resp.OK() {
		fmt.Fprintf(&sb, "%s %s\n%s %s",
			dimStyle.Render("Status:"), errorStyle.Render(resp.Status),
			dimStyle.Render("Error:"), resp.Error,
		)
		fmt.Fprintln(w, boxStyle.Render(sb.String()))
		return
	}

	doc := resp.StructuredResult
	fmt.Fprintf(&sb, "%s %s  %s %s\n",
		dimStyle.Render("Status:"), successStyle.Render(resp.Status),
		dimStyle.Render("Difficulty:"), string(doc.QuestionAnalysis.Difficulty),
	)
	fmt.Fprintf(&sb, "%s %d  %s %d  %s %d  %s %d",
		dimStyle.Render("Sub questions:"), doc.TotalSubquestions,
		dimStyle.Render("Knowledge points:"), doc.TotalKnowledgePoints,
		dimStyle.Render("Steps:"), doc.TotalSolutionSteps,
		dimStyle.Render("Suggestions:"), len(doc.GeneralSuggestions),
	)
	if doc.TotalScore != nil {
		fmt.Fprintf(&sb, "  %s %d", dimStyle.Render("Score:"), *doc.TotalScore)
	}
	if resp.ProcessingTime != nil {
		fmt.Fprintf(&sb, "\n%s %.3fs", dimStyle.Render("Processing:"), *resp.ProcessingTime)
	}

	fmt.Fprintln(w, boxStyle.Render(sb.String()))
}
