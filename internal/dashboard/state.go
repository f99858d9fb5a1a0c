package dashboard

import "github.com/kapu/terrascope/internal/domain"

// ViewState is a deep-copied snapshot of everything a UI renders.
type ViewState struct {
	Version                 uint64                   `json:"version"`
	Status                  domain.FetchStatus       `json:"status"`
	ActiveProfile           *domain.CountryProfile   `json:"activeProfile"`
	ErrorMessage            string                   `json:"errorMessage,omitempty"`
	IsCompareMode           bool                     `json:"isCompareMode"`
	AppLanguage             string                   `json:"appLanguage"`
	SelectedContentLanguage string                   `json:"selectedContentLanguage"`
	Translation             TranslationState         `json:"translation"`
	Comparison              []*domain.CountryProfile `json:"comparison"`
	ComparisonFull          bool                     `json:"comparisonFull"`
	InComparison            bool                     `json:"inComparison"`
	Panels                  PanelsState              `json:"panels"`
	ExchangeRows            []domain.ExchangeRow     `json:"exchangeRows,omitempty"`
	Theme                   domain.Theme             `json:"theme"`
	DisplayDescription      string                   `json:"displayDescription,omitempty"`
	DisplayFunFacts         []string                 `json:"displayFunFacts,omitempty"`
}
