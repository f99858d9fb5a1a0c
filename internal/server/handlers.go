package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/domain"
	apperrors "github.com/kapu/terrascope/pkg/errors"
)

type openRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type searchRequest struct {
	Query string `json:"query" validate:"required,max=100"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required,max=40"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

type isoParam struct {
	ISO string `param:"iso" validate:"required,len=2,alpha"`
}

type comparisonResponse struct {
	Result dashboard.AddResult `json:"result"`
	State  dashboard.ViewState `json:"state"`
}

type themeResponse struct {
	Theme domain.Theme `json:"theme"`
}

type shareResponse struct {
	URL string `json:"url"`
}

func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("malformed request", "body", nil)
	}
	if err := c.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error(), "body", nil)
	}
	return nil
}

func (s *Server) getState(c echo.Context) error {
	return success(c, s.coord.State())
}

func (s *Server) open(c echo.Context) error {
	var req openRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if s.nav == nil {
		return failure(c, http.StatusNotImplemented, "NOT_SUPPORTED", "deep links are not available")
	}
	if err := s.nav.Navigate(req.URL); err != nil {
		return apperrors.NewValidationError(err.Error(), "url", req.URL)
	}

	if err := s.coord.Open(c.Request().Context()); err != nil {
		return s.loadFailed(c, err)
	}
	if s.coord.State().ActiveProfile != nil {
		s.refreshPanels()
	}
	return success(c, s.coord.State())
}

func (s *Server) search(c echo.Context) error {
	var req searchRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := s.coord.Search(c.Request().Context(), req.Query); err != nil {
		return s.loadFailed(c, err)
	}
	s.refreshPanels()
	return success(c, s.coord.State())
}

// loadFailed answers a failed load with the ERROR state; only bad input is a
// transport error.
func (s *Server) loadFailed(c echo.Context, err error) error {
	if apperrors.IsValidationError(err) {
		return err
	}
	s.logger.Warn("Profile load failed", zap.Error(err))
	return success(c, s.coord.State())
}

func (s *Server) reset(c echo.Context) error {
	s.coord.Reset()
	return success(c, s.coord.State())
}

func (s *Server) setLanguage(c echo.Context) error {
	var req languageRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := s.coord.SetAppLanguage(req.Language); err != nil {
		return err
	}
	return success(c, s.coord.State())
}

func (s *Server) translate(c echo.Context) error {
	var req languageRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := s.coord.Translate(c.Request().Context(), req.Language); err != nil {
		if apperrors.IsValidationError(err) {
			return err
		}
		s.logger.Warn("Translation failed", zap.String("language", req.Language), zap.Error(err))
	}
	return success(c, s.coord.State())
}

func (s *Server) addComparison(c echo.Context) error {
	result := s.coord.AddToComparison()
	return success(c, comparisonResponse{Result: result, State: s.coord.State()})
}

func (s *Server) removeComparison(c echo.Context) error {
	var req isoParam
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if !s.coord.RemoveFromComparison(req.ISO) {
		return failure(c, http.StatusNotFound, "NOT_IN_COMPARISON", req.ISO+" is not being compared")
	}
	return success(c, s.coord.State())
}

func (s *Server) clearComparison(c echo.Context) error {
	s.coord.ClearComparison()
	return success(c, s.coord.State())
}

func (s *Server) toggleCompareMode(c echo.Context) error {
	s.coord.ToggleCompareMode()
	return success(c, s.coord.State())
}

func (s *Server) distances(c echo.Context) error {
	distances := s.coord.CapitalDistances()
	if distances == nil {
		distances = []dashboard.CapitalDistance{}
	}
	return success(c, distances)
}

func (s *Server) getTheme(c echo.Context) error {
	return success(c, themeResponse{Theme: s.coord.State().Theme})
}

func (s *Server) setTheme(c echo.Context) error {
	var req themeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := s.coord.SetTheme(c.Request().Context(), domain.Theme(req.Theme)); err != nil {
		return err
	}
	return success(c, themeResponse{Theme: s.coord.State().Theme})
}

func (s *Server) share(c echo.Context) error {
	u, err := s.coord.ShareURL()
	if err != nil {
		return err
	}
	return success(c, shareResponse{URL: u})
}

func (s *Server) websocket(c echo.Context) error {
	if err := s.hub.Serve(c.Response(), c.Request(), StateMessage(s.coord.State())); err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
	}
	return nil
}
