package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/clicker-session/internal"
)

const bucketColumnWidth = 17

var (
	questionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				MarginBottom(1)

	bucketHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Width(bucketColumnWidth).
				Align(lipgloss.Center)

	noChoiceHeaderStyle = bucketHeaderStyle.
				Foreground(lipgloss.Color("214"))

	bucketCellStyle = lipgloss.NewStyle().
			Width(bucketColumnWidth).
			PaddingLeft(2)

	bucketCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Width(bucketColumnWidth).
				Align(lipgloss.Center)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// renderBuckets lays the six buckets out side by side
func renderBuckets(question int, c *internal.Classification) string {
	columns := make([]string, 0, 6)
	for _, b := range internal.AllBuckets() {
		members := c.Buckets.Get(b)

		header := bucketHeaderStyle
		if b == internal.BucketNoChoice {
			header = noChoiceHeaderStyle
		}

		lines := []string{
			header.Render(b.String()),
			bucketCountStyle.Render(fmt.Sprintf("(%d)", len(members))),
		}
		for _, m := range members {
			lines = append(lines, bucketCellStyle.Render(m))
		}
		columns = append(columns, columnStyle.Render(strings.Join(lines, "\n")))
	}

	var sb strings.Builder
	sb.WriteString(questionTitleStyle.Render(fmt.Sprintf("Question %d", question)))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	sb.WriteString("\n")
	if len(c.UnknownDevices) > 0 {
		sb.WriteString(metaStyle.Render(fmt.Sprintf("Skipped unknown device(s): %s", strings.Join(c.UnknownDevices, ", "))))
		sb.WriteString("\n")
	}
	return sb.String()
}
