package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/constants"
	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/service/preference"
	"github.com/kapu/terrascope/internal/service/provider"
	"github.com/kapu/terrascope/internal/util"
	apperrors "github.com/kapu/terrascope/pkg/errors"
)

// Providers groups the adapters the dashboard reads from. Only Profile is
// required; a missing panel provider leaves its panel unavailable.
type Providers struct {
	Profile     provider.ProfileProvider
	Translation provider.TranslationProvider
	News        provider.NewsProvider
	Weather     provider.WeatherProvider
	Rates       provider.ExchangeRateProvider
}

type Options struct {
	AppLanguage  string
	DefaultTheme domain.Theme
	// ShareBaseURL is the dashboard URL share links are built from.
	ShareBaseURL string
	Location     Location
	Preferences  preference.Store
}

// Coordinator is the dashboard's application state. All mutation goes through
// its methods. Provider calls run outside the lock; every resumption checks its
// token before writing so stale responses are dropped.
type Coordinator struct {
	mu sync.Mutex

	providers   Providers
	location    Location
	prefs       preference.Store
	shareBase   string
	logger      *zap.Logger
	version     uint64
	appLanguage string
	contentLang string
	theme       domain.Theme

	profile     *ProfileAggregator
	comparison  *ComparisonSet
	translation *TranslationOverlay
	panels      panelSet

	// locMu orders location writes. Holders re-check the profile token under
	// c.mu before writing.
	locMu sync.Mutex

	notifyMu     sync.Mutex
	observers    map[uint64]func(ViewState)
	nextObserver uint64
}

func NewCoordinator(providers Providers, opts Options, logger *zap.Logger) (*Coordinator, error) {
	if providers.Profile == nil {
		return nil, fmt.Errorf("profile provider is required")
	}
	lang := strings.TrimSpace(opts.AppLanguage)
	if lang == "" {
		lang = "English"
	}
	theme := opts.DefaultTheme
	if theme == "" {
		theme = domain.ThemeDark
	}
	return &Coordinator{
		providers:   providers,
		location:    opts.Location,
		prefs:       opts.Preferences,
		shareBase:   opts.ShareBaseURL,
		logger:      util.OrNop(logger),
		appLanguage: lang,
		contentLang: lang,
		theme:       theme,
		profile:     NewProfileAggregator(),
		comparison:  NewComparisonSet(constants.ComparisonConfig.MaxEntries),
		translation: NewTranslationOverlay(),
		panels:      newPanelSet(),
		observers:   make(map[uint64]func(ViewState)),
	}, nil
}

// Subscribe registers fn to receive a snapshot after every change. fn must not
// call back into the Coordinator's mutating methods.
func (c *Coordinator) Subscribe(fn func(ViewState)) (unsubscribe func()) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	id := c.nextObserver
	c.nextObserver++
	c.observers[id] = fn

	return func() {
		c.notifyMu.Lock()
		defer c.notifyMu.Unlock()
		delete(c.observers, id)
	}
}

// publish delivers snapshots in the order they were taken.
func (c *Coordinator) publish() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	if len(c.observers) == 0 {
		return
	}
	state := c.State()
	for _, fn := range c.observers {
		fn(state)
	}
}

// changed must be called with mu held after every mutation.
func (c *Coordinator) changed() {
	c.version++
}

// Open performs the initial deep-link load: when the location names a country
// it is loaded exactly once and the location is not written back.
func (c *Coordinator) Open(ctx context.Context) error {
	if c.location == nil {
		return nil
	}
	country := c.location.Country()
	if country == "" {
		return nil
	}
	c.logger.Info("Opening deep link", zap.String("country", country))
	return c.load(ctx, country, "", false)
}

// Search loads query in the app language and publishes the canonical name to
// the location on success.
func (c *Coordinator) Search(ctx context.Context, query string) error {
	return c.load(ctx, query, "", true)
}

// LoadProfile loads query with content in language (the app language when
// empty). It returns an error only when this call's failure was applied; a
// response superseded by a newer load is dropped and returns nil.
func (c *Coordinator) LoadProfile(ctx context.Context, query, language string) error {
	return c.load(ctx, query, language, true)
}

func (c *Coordinator) load(ctx context.Context, query, language string, publishLocation bool) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return apperrors.NewValidationError("search query is required", "query", query)
	}

	c.mu.Lock()
	if language == "" {
		language = c.appLanguage
	}
	token := c.profile.Begin(query)
	c.translation.Invalidate()
	c.contentLang = language
	c.comparison.ExitCompareMode()
	c.changed()
	c.mu.Unlock()
	c.publish()

	c.logger.Info("Loading country profile",
		zap.String("query", query),
		zap.String("language", language),
		zap.Uint64("request", token),
	)

	profile, err := c.providers.Profile.FetchProfile(ctx, query, language)

	c.mu.Lock()
	if err != nil {
		applied := c.profile.Fail(token, constants.Messages.ProfileFetchFailed)
		if applied {
			c.changed()
		}
		c.mu.Unlock()
		if !applied {
			c.logger.Debug("Dropping stale profile failure", zap.String("query", query), zap.Uint64("request", token))
			return nil
		}
		c.logger.Error("Profile fetch failed", zap.String("query", query), zap.Error(err))
		c.publish()
		return fmt.Errorf("load profile %q: %w", query, err)
	}

	if !c.profile.Succeed(token, profile) {
		c.mu.Unlock()
		c.logger.Debug("Dropping stale profile", zap.String("query", query), zap.Uint64("request", token))
		return nil
	}
	c.translation.Invalidate()
	c.panels = newPanelSet()
	c.changed()
	name := profile.Name
	c.mu.Unlock()

	c.logger.Info("Country profile active",
		zap.String("name", name),
		zap.String("iso", profile.IsoAlpha2),
		zap.Uint64("request", token),
	)

	if publishLocation {
		c.setLocation(token, name)
	}
	c.publish()
	return nil
}

// setLocation writes name to the deep link while token is still the latest
// profile request. Failures are logged and swallowed.
func (c *Coordinator) setLocation(token uint64, name string) {
	if c.location == nil {
		return
	}
	c.locMu.Lock()
	defer c.locMu.Unlock()

	c.mu.Lock()
	current := c.profile.Current(token)
	c.mu.Unlock()
	if !current {
		c.logger.Debug("Skipping location update for superseded load", zap.String("country", name), zap.Uint64("request", token))
		return
	}
	if err := c.location.SetCountry(name); err != nil {
		c.logger.Warn("Could not update location", zap.String("country", name), zap.Error(err))
	}
}

// Translate overlays the active profile's original description and fun facts
// in targetLanguage. Selecting the app language clears the overlay without a
// call. With no active profile it does nothing.
func (c *Coordinator) Translate(ctx context.Context, targetLanguage string) error {
	targetLanguage = strings.TrimSpace(targetLanguage)
	if targetLanguage == "" {
		return apperrors.NewValidationError("target language is required", "language", targetLanguage)
	}

	c.mu.Lock()
	active := c.profile.Active()
	if active == nil {
		c.mu.Unlock()
		return nil
	}

	if util.SameFold(targetLanguage, c.appLanguage) {
		c.translation.Clear()
		c.contentLang = c.appLanguage
		c.changed()
		c.mu.Unlock()
		c.publish()
		return nil
	}

	if c.providers.Translation == nil {
		c.mu.Unlock()
		return fmt.Errorf("translation provider not configured")
	}

	token := c.translation.Begin(targetLanguage)
	gen := c.profile.Generation()
	c.contentLang = targetLanguage
	description := active.Description
	funFacts := util.CloneStrings(active.FunFacts)
	c.changed()
	c.mu.Unlock()
	c.publish()

	content, err := c.providers.Translation.Translate(ctx, description, funFacts, targetLanguage)

	c.mu.Lock()
	if gen != c.profile.Generation() || !c.translation.Current(token) {
		c.mu.Unlock()
		c.logger.Debug("Dropping stale translation", zap.String("language", targetLanguage))
		return nil
	}
	if err != nil {
		c.translation.Fail(token, "Translation failed")
		c.changed()
		c.mu.Unlock()
		c.logger.Warn("Translation failed", zap.String("language", targetLanguage), zap.Error(err))
		c.publish()
		return fmt.Errorf("translate to %s: %w", targetLanguage, err)
	}
	c.translation.Succeed(token, content)
	c.changed()
	c.mu.Unlock()
	c.publish()
	return nil
}

// RefreshPanels fetches weather, news and exchange rates for the active
// profile concurrently and returns once all three settle. Each failure only
// marks its own panel unavailable. Results for a profile that is no longer
// active are dropped.
func (c *Coordinator) RefreshPanels(ctx context.Context) {
	c.mu.Lock()
	active := c.profile.Active()
	if active == nil {
		c.mu.Unlock()
		return
	}
	gen := c.profile.Generation()
	coords := active.CapitalCoordinates
	currency := active.Currency.Code
	name := active.Name
	language := c.appLanguage

	c.panels.weather = Panel[domain.Weather]{Status: domain.StatusLoading}
	c.panels.news = Panel[domain.NewsDigest]{Status: domain.StatusLoading}
	c.panels.rates = Panel[domain.ExchangeRates]{Status: domain.StatusLoading}
	c.changed()
	c.mu.Unlock()
	c.publish()

	var wg conc.WaitGroup
	wg.Go(func() {
		if c.providers.Weather == nil {
			c.settleWeather(gen, nil, fmt.Errorf("weather provider not configured"))
			return
		}
		w, err := c.providers.Weather.CurrentWeather(ctx, coords)
		c.settleWeather(gen, w, err)
	})
	wg.Go(func() {
		if c.providers.News == nil {
			c.settleNews(gen, nil, fmt.Errorf("news provider not configured"))
			return
		}
		n, err := c.providers.News.FetchNews(ctx, name, language)
		c.settleNews(gen, n, err)
	})
	wg.Go(func() {
		if c.providers.Rates == nil || currency == "" {
			c.settleRates(gen, nil, fmt.Errorf("no exchange rate source for %q", currency))
			return
		}
		r, err := c.providers.Rates.Rates(ctx, currency)
		c.settleRates(gen, r, err)
	})
	wg.Wait()
}

func (c *Coordinator) settleWeather(gen uint64, value *domain.Weather, err error) {
	c.settlePanel("weather", gen, err, func() {
		c.panels.weather = settled(value, err)
	})
}

func (c *Coordinator) settleNews(gen uint64, value *domain.NewsDigest, err error) {
	c.settlePanel("news", gen, err, func() {
		c.panels.news = settled(value, err)
	})
}

func (c *Coordinator) settleRates(gen uint64, value *domain.ExchangeRates, err error) {
	c.settlePanel("rates", gen, err, func() {
		c.panels.rates = settled(value, err)
	})
}

func (c *Coordinator) settlePanel(panel string, gen uint64, err error, apply func()) {
	c.mu.Lock()
	if gen != c.profile.Generation() {
		c.mu.Unlock()
		c.logger.Debug("Dropping stale panel result", zap.String("panel", panel))
		return
	}
	apply()
	c.changed()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Panel unavailable", zap.String("panel", panel), zap.Error(err))
	}
	c.publish()
}

func settled[T any](value *T, err error) Panel[T] {
	if err != nil || value == nil {
		return Panel[T]{Status: domain.StatusError}
	}
	return Panel[T]{Status: domain.StatusSuccess, Value: value}
}

// AddToComparison adds a copy of the active profile to the comparison set.
func (c *Coordinator) AddToComparison() AddResult {
	c.mu.Lock()
	result := c.comparison.Add(c.profile.Active())
	if result == AddResultAdded {
		c.changed()
	}
	c.mu.Unlock()

	if result == AddResultAdded {
		c.publish()
	}
	return result
}

func (c *Coordinator) RemoveFromComparison(isoAlpha2 string) bool {
	c.mu.Lock()
	removed := c.comparison.Remove(isoAlpha2)
	if removed {
		c.changed()
	}
	c.mu.Unlock()

	if removed {
		c.publish()
	}
	return removed
}

func (c *Coordinator) ClearComparison() {
	c.mu.Lock()
	c.comparison.Clear()
	c.changed()
	c.mu.Unlock()
	c.publish()
}

// ToggleCompareMode flips compare mode; with an empty set it stays off.
func (c *Coordinator) ToggleCompareMode() bool {
	c.mu.Lock()
	before := c.comparison.CompareMode()
	mode := c.comparison.ToggleCompareMode()
	if mode != before {
		c.changed()
	}
	c.mu.Unlock()

	if mode != before {
		c.publish()
	}
	return mode
}

// CapitalDistances returns pairwise capital distances for the comparison set.
func (c *Coordinator) CapitalDistances() []CapitalDistance {
	c.mu.Lock()
	entries := c.comparison.Entries()
	c.mu.Unlock()
	return CapitalDistances(entries)
}

// Reset returns to the home view: no profile, IDLE, compare mode off, no
// overlay and no country in the location. In-flight loads are dropped.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.profile.Reset()
	c.translation.Clear()
	c.comparison.ExitCompareMode()
	c.panels = newPanelSet()
	c.contentLang = c.appLanguage
	c.changed()
	c.mu.Unlock()

	if c.location != nil {
		c.locMu.Lock()
		c.mu.Lock()
		home := c.profile.Active() == nil
		c.mu.Unlock()
		// A search that finished after the reset owns the location.
		if home {
			if err := c.location.ClearCountry(); err != nil {
				c.logger.Warn("Could not clear location", zap.Error(err))
			}
		}
		c.locMu.Unlock()
	}
	c.publish()
}

// SetAppLanguage changes the base language. The current profile is not
// refetched; the next search uses the new language.
func (c *Coordinator) SetAppLanguage(language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return apperrors.NewValidationError("language is required", "language", language)
	}

	c.mu.Lock()
	c.appLanguage = language
	c.changed()
	c.mu.Unlock()
	c.publish()
	return nil
}

// LoadTheme reads the stored theme, keeping the default when nothing is stored
// or the store fails.
func (c *Coordinator) LoadTheme(ctx context.Context) domain.Theme {
	if c.prefs != nil {
		theme, ok, err := c.prefs.Theme(ctx)
		switch {
		case err != nil:
			c.logger.Warn("Could not load theme", zap.Error(err))
		case ok:
			c.mu.Lock()
			c.theme = theme
			c.changed()
			c.mu.Unlock()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SetTheme changes and saves the theme. A save failure is logged; the
// in-memory theme still changes.
func (c *Coordinator) SetTheme(ctx context.Context, requested domain.Theme) error {
	theme, err := domain.ParseTheme(string(requested))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), "theme", string(requested))
	}

	c.mu.Lock()
	c.theme = theme
	c.changed()
	c.mu.Unlock()

	if c.prefs != nil {
		if err := c.prefs.SetTheme(ctx, theme); err != nil {
			c.logger.Warn("Could not save theme", zap.String("theme", theme.String()), zap.Error(err))
		}
	}
	c.publish()
	return nil
}

func (c *Coordinator) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	c.mu.Lock()
	next := c.theme.Toggle()
	c.mu.Unlock()

	if err := c.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// ShareURL builds a link that deep-links to the active profile.
func (c *Coordinator) ShareURL() (string, error) {
	c.mu.Lock()
	active := c.profile.Active()
	c.mu.Unlock()

	if active == nil {
		return "", apperrors.NewValidationError("no active country to share", "country", "")
	}
	return domain.ShareURL(c.shareBase, active.Name)
}

// State returns a deep-copied snapshot.
func (c *Coordinator) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := c.profile.Active().Clone()
	state := ViewState{
		Version:                 c.version,
		Status:                  c.profile.Status(),
		ActiveProfile:           active,
		ErrorMessage:            c.profile.errMsg,
		IsCompareMode:           c.comparison.CompareMode(),
		AppLanguage:             c.appLanguage,
		SelectedContentLanguage: c.contentLang,
		Translation:             c.translation.snapshot(),
		Comparison:              c.comparison.Entries(),
		ComparisonFull:          c.comparison.Full(),
		Panels:                  c.panels.snapshot(),
		Theme:                   c.theme,
	}

	if active != nil {
		state.InComparison = c.comparison.Contains(active.IsoAlpha2)
		state.DisplayDescription = active.Description
		state.DisplayFunFacts = util.CloneStrings(active.FunFacts)
		if overlay := state.Translation.Overlay; overlay != nil {
			state.DisplayDescription = overlay.Description
			state.DisplayFunFacts = util.CloneStrings(overlay.FunFacts)
		}
		if state.Panels.Rates.Status == domain.StatusSuccess {
			state.ExchangeRows = domain.ExchangeRows(active.Currency.Code, state.Panels.Rates.Value)
		}
	}
	return state
}
