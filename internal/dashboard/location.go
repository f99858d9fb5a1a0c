package dashboard

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// CountryParam is the query parameter that carries the deep-linked country.
const CountryParam = "country"

// Location is the addressable place a dashboard view is shared through.
type Location interface {
	Country() string
	SetCountry(name string) error
	ClearCountry() error
}

// URLLocation is a Location backed by a URL with a push-style history.
type URLLocation struct {
	mu      sync.Mutex
	current *url.URL
	history []string
}

func NewURLLocation(raw string) (*URLLocation, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", raw, err)
	}
	return &URLLocation{current: u, history: []string{u.String()}}, nil
}

// Navigate replaces the location as a fresh page load would. The new URL is
// recorded as one history entry.
func (l *URLLocation) Navigate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse location %q: %w", raw, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = u
	l.history = append(l.history, u.String())
	return nil
}

func (l *URLLocation) Country() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.TrimSpace(l.current.Query().Get(CountryParam))
}

// SetCountry pushes a history entry with the country parameter set. Setting
// the value already present does not add an entry.
func (l *URLLocation) SetCountry(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	q := l.current.Query()
	if q.Get(CountryParam) == name {
		return nil
	}
	q.Set(CountryParam, name)
	l.push(q)
	return nil
}

func (l *URLLocation) ClearCountry() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	q := l.current.Query()
	if !q.Has(CountryParam) {
		return nil
	}
	q.Del(CountryParam)
	l.push(q)
	return nil
}

// push must be called with mu held.
func (l *URLLocation) push(q url.Values) {
	next := *l.current
	next.RawQuery = q.Encode()
	l.current = &next
	l.history = append(l.history, next.String())
}

func (l *URLLocation) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.String()
}

// History returns every URL the location has held, oldest first.
func (l *URLLocation) History() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.history...)
}

// NotifyingLocation forwards to another Location and reports successful
// changes.
type NotifyingLocation struct {
	Location
	OnChange func(country string)
}

func (n *NotifyingLocation) SetCountry(name string) error {
	if err := n.Location.SetCountry(name); err != nil {
		return err
	}
	if n.OnChange != nil {
		n.OnChange(name)
	}
	return nil
}

func (n *NotifyingLocation) ClearCountry() error {
	if err := n.Location.ClearCountry(); err != nil {
		return err
	}
	if n.OnChange != nil {
		n.OnChange("")
	}
	return nil
}
