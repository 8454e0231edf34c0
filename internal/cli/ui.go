package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"cryptochat/internal/ui"
)

// UI styles
var (
	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	skeletonStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Foreground(lipgloss.Color("#6B7280")).
			Padding(0, 2)

	deltaUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	deltaDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	notFoundStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Foreground(lipgloss.Color("#F59E0B")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
 ██████╗██████╗ ██╗   ██╗██████╗ ████████╗ ██████╗  ██████╗██╗  ██╗ █████╗ ████████╗
██╔════╝██╔══██╗╚██╗ ██╔╝██╔══██╗╚══██╔══╝██╔═══██╗██╔════╝██║  ██║██╔══██╗╚══██╔══╝
██║     ██████╔╝ ╚████╔╝ ██████╔╝   ██║   ██║   ██║██║     ███████║███████║   ██║
██║     ██╔══██╗  ╚██╔╝  ██╔═══╝    ██║   ██║   ██║██║     ██╔══██║██╔══██║   ██║
╚██████╗██║  ██║   ██║   ██║        ██║   ╚██████╔╝╚██████╗██║  ██║██║  ██║   ██║
 ╚═════╝╚═╝  ╚═╝   ╚═╝   ╚═╝        ╚═╝    ╚═════╝  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
`

	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		MarginBottom(1)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Println()
	fmt.Println(taglineStyle.Render("Live crypto prices and market stats, conversationally"))
}

// RenderDisplay prints a renderable to the terminal. Placeholder values
// (spinner, skeletons) print on their own line and are superseded by the
// final card once the tool resolves.
func RenderDisplay(rend ui.Renderable) {
	switch v := rend.(type) {
	case ui.TextMessage:
		fmt.Println(botStyle.Render("Bot: " + v.Text))
	case ui.Spinner:
		fmt.Println(skeletonStyle.Render("⏳ thinking..."))
	case ui.PriceSkeleton:
		fmt.Println(skeletonStyle.Render(fmt.Sprintf("▒▒▒ loading price of %s ▒▒▒", v.Symbol)))
	case ui.StatsSkeleton:
		fmt.Println(skeletonStyle.Render(fmt.Sprintf("▒▒▒ loading stats of %s ▒▒▒", v.Slug)))
	case ui.PriceCard:
		delta := deltaUpStyle.Render("▲ " + v.Delta.String())
		if v.Delta.IsNegative() {
			delta = deltaDownStyle.Render("▼ " + v.Delta.String())
		}
		fmt.Println(cardStyle.Render(fmt.Sprintf("%s  $%s  %s", v.Symbol, v.Price.String(), delta)))
	case ui.StatsCard:
		body := fmt.Sprintf("%s (%s)  rank #%d\nMarket cap: %.0f  Dominance: %.2f%%\n24h volume: %.0f (%.2f%%)\nTotal supply: %.0f",
			v.Stats.Name,
			v.Stats.Symbol,
			v.Stats.Rank,
			v.Stats.MarketCap,
			v.Stats.MarketCapDominance,
			v.Stats.Volume,
			v.Stats.VolumeChangePercentage24h,
			v.Stats.TotalSupply,
		)
		fmt.Println(cardStyle.Render(body))
	case ui.NotFoundCard:
		fmt.Println(notFoundStyle.Render(fmt.Sprintf("No coin found for %q", v.Slug)))
	default:
		fmt.Println(botStyle.Render(fmt.Sprintf("[%s]", rend.Kind())))
	}
}

// DisplayError shows an error message
func DisplayError(err error) {
	fmt.Println(errorStyle.Render("❌ Error: " + err.Error()))
}

// DisplayInfo shows an info message
func DisplayInfo(message string) {
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Render("ℹ️  " + message))
}
