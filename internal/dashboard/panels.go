package dashboard

import "github.com/kapu/terrascope/internal/domain"

// Panel is one independently failing display slot. ERROR means unavailable.
type Panel[T any] struct {
	Status domain.FetchStatus `json:"status"`
	Value  *T                 `json:"value,omitempty"`
}

func idlePanel[T any]() Panel[T] {
	return Panel[T]{Status: domain.StatusIdle}
}

type panelSet struct {
	weather Panel[domain.Weather]
	news    Panel[domain.NewsDigest]
	rates   Panel[domain.ExchangeRates]
}

func newPanelSet() panelSet {
	return panelSet{
		weather: idlePanel[domain.Weather](),
		news:    idlePanel[domain.NewsDigest](),
		rates:   idlePanel[domain.ExchangeRates](),
	}
}

// PanelsState is the JSON view of the panel slots.
type PanelsState struct {
	Weather Panel[domain.Weather]       `json:"weather"`
	News    Panel[domain.NewsDigest]    `json:"news"`
	Rates   Panel[domain.ExchangeRates] `json:"rates"`
}

func (p panelSet) snapshot() PanelsState {
	return PanelsState{
		Weather: Panel[domain.Weather]{Status: p.weather.Status, Value: p.weather.Value.Clone()},
		News:    Panel[domain.NewsDigest]{Status: p.news.Status, Value: p.news.Value.Clone()},
		Rates:   Panel[domain.ExchangeRates]{Status: p.rates.Status, Value: p.rates.Value.Clone()},
	}
}
