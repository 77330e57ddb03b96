package commands

import (
	"fmt"
	"strings"

	"github.com/akasprzok/chartkit/internal/colorschemes"
	"github.com/charmbracelet/lipgloss"
)

type SchemesCmd struct {
	Category string `name:"category" short:"c" help:"Only list schemes of this category."`
	Swatches bool   `name:"swatches" help:"Show the colors of every scheme." negatable:"" default:"true"`
}

func (s *SchemesCmd) Run(ctx *Context) error {
	for _, scheme := range colorschemes.All() {
		if s.Category != "" && !strings.EqualFold(scheme.Category, s.Category) {
			continue
		}
		line := scheme.Key()
		if s.Swatches {
			line = fmt.Sprintf("%-32s %s", line, Swatch(scheme))
		}
		if _, err := fmt.Fprintln(ctx.Out, line); err != nil {
			return err
		}
	}
	return nil
}

// Swatch renders one block per colour of scheme.
func Swatch(scheme colorschemes.Scheme) string {
	var b strings.Builder
	for _, c := range scheme.Colors {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("█"))
	}
	return b.String()
}
