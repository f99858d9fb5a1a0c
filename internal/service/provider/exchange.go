package provider

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/util"
	"github.com/kapu/terrascope/pkg/errors"
)

type erAPIResponse struct {
	Result            string             `json:"result"`
	BaseCode          string             `json:"base_code"`
	TimeLastUpdateUTC string             `json:"time_last_update_utc"`
	Rates             map[string]float64 `json:"rates"`
	ErrorType         string             `json:"error-type"`
}

// ExchangeService reads spot rates from open.er-api.com.
type ExchangeService struct {
	requester *JSONRequester
	baseURL   string
	logger    *zap.Logger
}

func NewExchangeService(requester *JSONRequester, baseURL string, logger *zap.Logger) *ExchangeService {
	return &ExchangeService{
		requester: requester,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    util.OrNop(logger),
	}
}

func (s *ExchangeService) Rates(ctx context.Context, baseCode string) (*domain.ExchangeRates, error) {
	code := strings.ToUpper(strings.TrimSpace(baseCode))
	if len(code) != 3 {
		return nil, errors.NewValidationError("currency code must have three letters", "baseCode", baseCode)
	}

	var body erAPIResponse
	if err := s.requester.GetJSON(ctx, s.baseURL+"/"+code, nil, &body); err != nil {
		return nil, errors.NewProviderError("fetch exchange rates", NameExchange, "rates", err)
	}
	if body.Result != "success" {
		s.logger.Warn("Exchange rate lookup rejected",
			zap.String("base", code),
			zap.String("result", body.Result),
			zap.String("error_type", body.ErrorType),
		)
		return nil, errors.NewProviderError("exchange rate lookup rejected", NameExchange, "rates", nil)
	}

	base := body.BaseCode
	if base == "" {
		base = code
	}
	return &domain.ExchangeRates{
		Base:        base,
		Rates:       body.Rates,
		LastUpdated: body.TimeLastUpdateUTC,
	}, nil
}
