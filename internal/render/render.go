// Package render writes dashboard state for terminals and scripts. Each format
// is a separate function; Render dispatches on the format string.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/domain"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatText  = "text"
)

// ValidFormat reports whether format is one Render understands.
func ValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatText:
		return true
	default:
		return false
	}
}

// Render writes state to w in the given format. Unknown formats fall back to
// the table view.
func Render(w io.Writer, state dashboard.ViewState, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, state)
	case FormatText:
		return renderText(w, state)
	default:
		return renderTable(w, state)
	}
}

// Distances writes the capital distance pairs of a comparison.
func Distances(w io.Writer, distances []dashboard.CapitalDistance, format string) error {
	if format == FormatJSON {
		return renderJSON(w, distances)
	}
	if len(distances) == 0 {
		_, err := fmt.Fprintln(w, "Add at least two countries to compare distances.")
		return err
	}
	tw := newTable(w, []string{"FROM", "TO", "DISTANCE (KM)"})
	for _, d := range distances {
		tw.Append([]string{
			fmt.Sprintf("%s (%s)", d.From, d.FromISO),
			fmt.Sprintf("%s (%s)", d.To, d.ToISO),
			fmt.Sprintf("%.1f", d.Kilometers),
		})
	}
	tw.Render()
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	return tw
}

func renderTable(w io.Writer, state dashboard.ViewState) error {
	if state.Status == domain.StatusError {
		if _, err := fmt.Fprintf(w, "Error: %s\n\n", state.ErrorMessage); err != nil {
			return err
		}
	}
	if state.IsCompareMode {
		return renderComparisonTable(w, state.Comparison)
	}

	p := state.ActiveProfile
	if p == nil {
		_, err := fmt.Fprintln(w, "No country selected.")
		return err
	}

	renderProfileTable(w, state)
	renderEconomyTable(w, p.EconomicHistory)
	renderLandmarkTable(w, p.Landmarks)
	renderPanels(w, state)
	return nil
}

func renderProfileTable(w io.Writer, state dashboard.ViewState) {
	p := state.ActiveProfile
	tw := newTable(w, []string{"FIELD", "VALUE"})
	tw.SetColWidth(80)
	tw.SetAutoWrapText(true)

	rows := [][]string{
		{"Name", p.Name},
		{"Official Name", p.OfficialName},
		{"ISO", p.IsoAlpha2},
		{"Flag", domain.FlagURL(p.IsoAlpha2)},
		{"Capital", p.Capital},
		{"Population", p.Population},
		{"Currency", formatCurrency(p.Currency)},
		{"Languages", strings.Join(p.Languages, ", ")},
		{"Region", p.Region},
		{"Climate", p.Climate},
		{"Internet TLD", p.InternetTLD},
		{"Calling Code", p.CallingCode},
		{"Timezone", p.PrimaryTimezone()},
		{"Emergency", fmt.Sprintf("Police %s / Ambulance %s / Fire %s",
			p.EmergencyNumbers.Police, p.EmergencyNumbers.Ambulance, p.EmergencyNumbers.Fire)},
		{"Safety", fmt.Sprintf("%.1f %s", p.SafetyAdvisory.Score, domain.RiskLevelFor(p.SafetyAdvisory.Score))},
		{"Description", state.DisplayDescription},
	}
	for i, fact := range state.DisplayFunFacts {
		rows = append(rows, []string{fmt.Sprintf("Fun Fact %d", i+1), fact})
	}
	if state.Translation.Status == domain.StatusError {
		rows = append(rows, []string{"Translation", "unavailable: " + state.Translation.Error})
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		tw.Append(r)
	}
	tw.Render()
}

func renderEconomyTable(w io.Writer, history []domain.EconomicMetric) {
	if len(history) == 0 {
		return
	}
	tw := newTable(w, []string{"YEAR", "GDP GROWTH %", "INFLATION %"})
	tw.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
	for _, m := range history {
		tw.Append([]string{m.Year, fmt.Sprintf("%.1f", m.GDP), fmt.Sprintf("%.1f", m.Inflation)})
	}
	tw.Render()
}

func renderLandmarkTable(w io.Writer, landmarks []domain.Landmark) {
	if len(landmarks) == 0 {
		return
	}
	tw := newTable(w, []string{"LANDMARK", "CATEGORY", "DESCRIPTION"})
	tw.SetColWidth(60)
	tw.SetAutoWrapText(true)
	for _, l := range landmarks {
		name := l.Name
		if l.Emoji != "" {
			name = l.Emoji + " " + name
		}
		tw.Append([]string{name, string(domain.ClassifyLandmark(l.Type)), l.Description})
	}
	tw.Render()
}

func renderPanels(w io.Writer, state dashboard.ViewState) {
	panels := state.Panels
	if panelsIdle(panels) {
		return
	}

	tw := newTable(w, []string{"PANEL", "VALUE"})
	tw.SetColWidth(80)
	tw.SetAutoWrapText(true)
	tw.Append([]string{"Weather", formatWeather(panels.Weather)})
	if len(state.ExchangeRows) > 0 {
		for _, row := range state.ExchangeRows {
			tw.Append([]string{"1 " + state.ActiveProfile.Currency.Code + " in " + row.Code, row.Formatted})
		}
	} else {
		tw.Append([]string{"Exchange Rates", panelPlaceholder(panels.Rates.Status)})
	}
	if panels.News.Status == domain.StatusSuccess && panels.News.Value != nil {
		tw.Append([]string{"News", panels.News.Value.Content})
		for _, src := range panels.News.Value.Sources {
			tw.Append([]string{"Source", src.Title + " " + src.URI})
		}
	} else {
		tw.Append([]string{"News", panelPlaceholder(panels.News.Status)})
	}
	tw.Render()
}

func renderComparisonTable(w io.Writer, entries []*domain.CountryProfile) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Comparison is empty.")
		return err
	}

	header := []string{"FIELD"}
	for _, p := range entries {
		header = append(header, p.Name)
	}
	tw := newTable(w, header)

	row := func(label string, value func(*domain.CountryProfile) string) {
		cells := []string{label}
		for _, p := range entries {
			cells = append(cells, value(p))
		}
		tw.Append(cells)
	}
	row("Capital", func(p *domain.CountryProfile) string { return p.Capital })
	row("Population", func(p *domain.CountryProfile) string { return p.Population })
	row("Currency", func(p *domain.CountryProfile) string { return formatCurrency(p.Currency) })
	row("Language", func(p *domain.CountryProfile) string { return p.PrimaryLanguage() })
	row("Region", func(p *domain.CountryProfile) string { return p.Region })
	row("Timezone", func(p *domain.CountryProfile) string { return p.PrimaryTimezone() })
	row("Safety", func(p *domain.CountryProfile) string {
		return fmt.Sprintf("%.1f %s", p.SafetyAdvisory.Score, domain.RiskLevelFor(p.SafetyAdvisory.Score))
	})
	row("Latest GDP %", func(p *domain.CountryProfile) string {
		if len(p.EconomicHistory) == 0 {
			return "-"
		}
		return fmt.Sprintf("%.1f", p.EconomicHistory[len(p.EconomicHistory)-1].GDP)
	})
	tw.Render()
	return nil
}

func formatCurrency(c domain.Currency) string {
	switch {
	case c.Code == "":
		return c.Name
	case c.Symbol == "":
		return fmt.Sprintf("%s (%s)", c.Name, c.Code)
	default:
		return fmt.Sprintf("%s (%s, %s)", c.Name, c.Code, c.Symbol)
	}
}

func formatWeather(panel dashboard.Panel[domain.Weather]) string {
	if panel.Status != domain.StatusSuccess || panel.Value == nil {
		return panelPlaceholder(panel.Status)
	}
	wx := panel.Value
	return fmt.Sprintf("%s, %.0f°C / %.0f°F, feels %.0f°C, humidity %.0f%%, wind %.0f km/h %s",
		domain.WeatherLabel(wx.WeatherCode),
		wx.Temperature,
		domain.CelsiusToFahrenheit(wx.Temperature),
		wx.FeelsLike,
		wx.Humidity,
		wx.WindSpeed,
		domain.WindDirection(wx.WindDirection),
	)
}

func panelPlaceholder(status domain.FetchStatus) string {
	switch status {
	case domain.StatusLoading:
		return "loading..."
	case domain.StatusError:
		return "unavailable"
	default:
		return "-"
	}
}
