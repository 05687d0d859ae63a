package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"haircolor-mixer/models"
	"haircolor-mixer/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: "#A0A0A0"})
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A02424", Dark: "#FF8787"})
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1B6F3A", Dark: "#5FD787"})
)

// swatch renders a block of the given color
func swatch(hex string, width int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", width))
}

// printBlend writes the blend result with one line per ingredient
func printBlend(w io.Writer, result models.BlendResult) {
	for _, ing := range result.Ingredients {
		line := fmt.Sprintf("%s %-8s %-9s %6s", swatch(ing.PreviewHex, 2), ing.Code, ing.Brand, utils.FormatPercent(ing.Ratio))
		switch {
		case !ing.Resolved:
			line += " " + invalidStyle.Render("unknown code")
		case !ing.Included:
			line += " " + mutedStyle.Render("excluded")
		}
		fmt.Fprintln(w, line)
	}

	total := fmt.Sprintf("total %s", utils.FormatPercent(result.InputRatio))
	if result.RatioComplete {
		total = okStyle.Render(total)
	} else {
		total = invalidStyle.Render(total + " (not 100%)")
	}
	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("-", 30)), total)

	fmt.Fprintf(w, "%s %s rgb(%d, %d, %d)", swatch(result.Hex, 8), titleStyle.Render(result.Hex), result.RGB.R, result.RGB.G, result.RGB.B)
	if result.Level != nil {
		fmt.Fprintf(w, " level %d", *result.Level)
	}
	if result.Neutral {
		fmt.Fprint(w, " "+mutedStyle.Render("(no valid ingredients)"))
	}
	fmt.Fprintln(w)
}
