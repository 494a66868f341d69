package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/markets_table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	metricStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

const chartBarWidth = 30

// View implements tea.Model
func (m Model) View() string {
	snap := m.snap
	sel := snap.Selections
	var b strings.Builder

	b.WriteString(titleStyle.Render("Crypto Market Dashboard"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %s · %s change · top %d · sort %s",
		sel.Currency.Label(), sel.Window, sel.TopN, onOff(sel.Sort))))
	if m.busy != "" {
		b.WriteString(labelStyle.Render("  (" + m.busy + "...)"))
	}
	b.WriteString("\n")

	b.WriteString(renderMetrics(snap))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(renderTrending(snap)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(headerStyle.Render("Markets")))
	b.WriteString("\n")
	if snap.ViewError != "" {
		b.WriteString(errorStyle.Render(snap.ViewError))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(headerStyle.Render(fmt.Sprintf("Price change (%s)", sel.Window))))
	b.WriteString("\n")
	b.WriteString(renderChart(snap.View.Chart, chartBarWidth))
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(sectionStyle.Render("Search: " + m.search.View()))
	case modeFilter:
		b.WriteString(sectionStyle.Render("Coins: " + m.filter.View()))
	default:
		if sel.Search != "" {
			b.WriteString(sectionStyle.Render(renderSearch(snap)))
		}
	}
	b.WriteString("\n")

	b.WriteString(renderErrors(snap))
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("c currency · w window · s sort · +/- top N · f filter coins · / search · r refresh · q quit"))
	return b.String()
}

func renderMetrics(snap dashboard.Snapshot) string {
	currency := snap.Selections.Currency
	na := markets_table.NotAvailable
	capValue, volValue, change := na, na, na
	if g := snap.Global; g != nil {
		capValue = humanMoney(g.MarketCap(currency), currency.Label())
		volValue = humanMoney(g.Volume(currency), currency.Label())
		change = markets_table.FormatPercent(g.MarketCapChangePct24hUSD)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		metricStyle.Render(labelStyle.Render("Total Market Cap")+"\n"+capValue),
		metricStyle.Render(labelStyle.Render("24h Volume")+"\n"+volValue),
		metricStyle.Render(labelStyle.Render("Market Cap Change 24h (USD)")+"\n"+colorChange(change)),
	)
}

func renderTrending(snap dashboard.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Trending"))
	b.WriteString("\n")
	if len(snap.Trending) == 0 {
		b.WriteString(labelStyle.Render("no trending coins"))
		return b.String()
	}

	for i, coin := range snap.Trending {
		rank := markets_table.NotAvailable
		if coin.MarketCapRank != nil {
			rank = fmt.Sprintf("#%d", *coin.MarketCapRank)
		}
		fmt.Fprintf(&b, "%d. %s (%s)  %s  rank %s\n", i+1, coin.Name, strings.ToUpper(coin.Symbol),
			markets_table.FormatMoney(coin.Price, snap.Selections.Currency), rank)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSearch(snap dashboard.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Search %q", snap.Selections.Search)))
	b.WriteString("\n")
	if snap.SearchError != "" {
		b.WriteString(errorStyle.Render(snap.SearchError))
		return b.String()
	}
	for _, r := range snap.SearchResults {
		fmt.Fprintf(&b, "%s (%s)  %s  %s\n", r.Name, strings.ToUpper(r.Symbol),
			markets_table.FormatMoney(r.Price, r.Currency), colorChange(markets_table.FormatPercent(r.PctChange24h)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderErrors(snap dashboard.Snapshot) string {
	errs := snap.Errors()
	if len(errs) == 0 {
		return ""
	}
	panels := make([]string, 0, len(errs))
	for panel := range errs {
		panels = append(panels, panel)
	}
	sort.Strings(panels)

	var b strings.Builder
	for _, panel := range panels {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s: %s (showing last loaded data)", panel, errs[panel])))
		b.WriteString("\n")
	}
	return b.String()
}

// renderChart draws one horizontal bar per entry, scaled to the largest
// absolute change. Absent changes get no bar.
func renderChart(bars []markets_table.ChartBar, width int) string {
	if len(bars) == 0 {
		return labelStyle.Render("no data")
	}

	maxAbs := 0.0
	for _, bar := range bars {
		if bar.Change != nil {
			maxAbs = math.Max(maxAbs, math.Abs(*bar.Change))
		}
	}

	lines := make([]string, 0, len(bars))
	for _, bar := range bars {
		value := markets_table.FormatPercent(bar.Change)
		length := 0
		if bar.Change != nil && maxAbs > 0 {
			length = max(1, int(math.Round(math.Abs(*bar.Change)/maxAbs*float64(width))))
		}

		style := downStyle
		if bar.Positive {
			style = upStyle
		}
		lines = append(lines, fmt.Sprintf("%-8s %s %s", bar.Symbol,
			style.Render(strings.Repeat("█", length))+strings.Repeat(" ", width-length), value))
	}
	return strings.Join(lines, "\n")
}

// humanMoney renders large totals compactly, e.g. "2.5 trillion USD"
func humanMoney(v *float64, label string) string {
	if v == nil {
		return markets_table.NotAvailable
	}
	value, unit := humanize.ComputeSI(*v)
	switch unit {
	case "T":
		return fmt.Sprintf("%.2f trillion %s", value, label)
	case "G":
		return fmt.Sprintf("%.2f billion %s", value, label)
	case "M":
		return fmt.Sprintf("%.2f million %s", value, label)
	}
	return humanize.CommafWithDigits(*v, 2) + " " + label
}

func colorChange(s string) string {
	switch {
	case strings.HasPrefix(s, "+"):
		return upStyle.Render(s)
	case strings.HasPrefix(s, "-"):
		return downStyle.Render(s)
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
