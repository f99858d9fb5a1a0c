package dashboard

import "github.com/kapu/terrascope/internal/domain"

// ProfileAggregator owns the active profile and its fetch status. Each load
// takes a token; only the most recently issued token may apply a result.
type ProfileAggregator struct {
	status  domain.FetchStatus
	active  *domain.CountryProfile
	errMsg  string
	seq     uint64
	gen     uint64
	pending string
}

func NewProfileAggregator() *ProfileAggregator {
	return &ProfileAggregator{status: domain.StatusIdle}
}

// Begin moves to LOADING, clears the error and returns the request token.
func (a *ProfileAggregator) Begin(query string) uint64 {
	a.seq++
	a.status = domain.StatusLoading
	a.errMsg = ""
	a.pending = query
	return a.seq
}

func (a *ProfileAggregator) Current(token uint64) bool {
	return token == a.seq
}

// Succeed installs profile if token is current. A new profile starts a new
// generation.
func (a *ProfileAggregator) Succeed(token uint64, profile *domain.CountryProfile) bool {
	if !a.Current(token) {
		return false
	}
	a.active = profile
	a.status = domain.StatusSuccess
	a.pending = ""
	a.gen++
	return true
}

// Fail records a user-facing error if token is current. The previously
// displayed profile stays active.
func (a *ProfileAggregator) Fail(token uint64, message string) bool {
	if !a.Current(token) {
		return false
	}
	a.status = domain.StatusError
	a.errMsg = message
	a.pending = ""
	return true
}

// Reset drops the active profile and cancels any in-flight load.
func (a *ProfileAggregator) Reset() {
	a.seq++
	a.gen++
	a.active = nil
	a.status = domain.StatusIdle
	a.errMsg = ""
	a.pending = ""
}

func (a *ProfileAggregator) Active() *domain.CountryProfile {
	return a.active
}

func (a *ProfileAggregator) Generation() uint64 {
	return a.gen
}

func (a *ProfileAggregator) Status() domain.FetchStatus {
	return a.status
}
