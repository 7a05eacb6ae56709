package cli

import (
	"strings"

	"github.com/fatih/color"
)

var (
	stageColors = map[string]*color.Color{
		"applied":  color.New(color.FgWhite),
		"screen":   color.New(color.FgCyan),
		"tech":     color.New(color.FgBlue),
		"offer":    color.New(color.FgYellow),
		"hired":    color.New(color.FgGreen),
		"rejected": color.New(color.FgRed),
	}
	statusColors = map[string]*color.Color{
		"active":   color.New(color.FgGreen),
		"archived": color.New(color.FgHiBlack),
	}
	errorColor = color.New(color.FgRed)
)

func colorStage(stage string) string {
	if c, ok := stageColors[stage]; ok {
		return c.Sprint(stage)
	}
	return stage
}

func colorStatus(status string) string {
	if c, ok := statusColors[status]; ok {
		return c.Sprint(status)
	}
	return status
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
