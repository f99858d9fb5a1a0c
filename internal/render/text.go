package render

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/domain"
)

//go:embed templates/*.tmpl
var textTemplateFS embed.FS

var (
	textTemplates *template.Template
	textOnce      sync.Once
	textErr       error
)

func executeTextTemplate(name string, data any) (string, error) {
	textOnce.Do(func() {
		funcMap := template.FuncMap{
			"add":          func(a, b int) int { return a + b },
			"join":         strings.Join,
			"flag":         domain.FlagURL,
			"risk":         domain.RiskLevelFor,
			"landmarkKind": domain.ClassifyLandmark,
			"weatherLabel": domain.WeatherLabel,
			"weatherIcon":  domain.WeatherIcon,
			"wind":         domain.WindDirection,
			"fahrenheit":   domain.CelsiusToFahrenheit,
			"placeholder":  panelPlaceholder,
			"panelsIdle":   panelsIdle,
			"currency":     formatCurrency,
			"oneDecimal":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
			"whole":        func(v float64) string { return fmt.Sprintf("%.0f", v) },
		}
		tmpl := template.New("render").Funcs(funcMap)
		textTemplates, textErr = tmpl.ParseFS(textTemplateFS, "templates/*.tmpl")
	})

	if textErr != nil {
		return "", textErr
	}

	var builder strings.Builder
	if err := textTemplates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", err
	}
	return strings.TrimRight(builder.String(), "\n"), nil
}

func panelsIdle(p dashboard.PanelsState) bool {
	return p.Weather.Status == domain.StatusIdle && p.News.Status == domain.StatusIdle && p.Rates.Status == domain.StatusIdle
}

func renderText(w io.Writer, state dashboard.ViewState) error {
	name := "profile.tmpl"
	switch {
	case state.IsCompareMode:
		name = "comparison.tmpl"
	case state.ActiveProfile == nil:
		name = "home.tmpl"
	}

	out, err := executeTextTemplate(name, state)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
