package dashboard

import "github.com/kapu/terrascope/internal/domain"

// TranslationOverlay holds translated description and fun facts layered over
// the active profile. Every request takes a token; Invalidate and Clear bump the
// sequence so responses to older requests are dropped.
type TranslationOverlay struct {
	status   domain.FetchStatus
	overlay  *domain.TranslatedContent
	language string
	errMsg   string
	seq      uint64
}

func NewTranslationOverlay() *TranslationOverlay {
	return &TranslationOverlay{status: domain.StatusIdle}
}

// Begin marks a request for language as in flight and returns its token.
func (t *TranslationOverlay) Begin(language string) uint64 {
	t.seq++
	t.status = domain.StatusLoading
	t.language = language
	t.errMsg = ""
	return t.seq
}

// Current reports whether token belongs to the latest request.
func (t *TranslationOverlay) Current(token uint64) bool {
	return token == t.seq
}

// Succeed installs the translated content for the request identified by token.
func (t *TranslationOverlay) Succeed(token uint64, content *domain.TranslatedContent) bool {
	if !t.Current(token) {
		return false
	}
	t.overlay = content.Clone()
	t.status = domain.StatusSuccess
	return true
}

// Fail records an error and keeps whatever overlay was shown before.
func (t *TranslationOverlay) Fail(token uint64, message string) bool {
	if !t.Current(token) {
		return false
	}
	t.status = domain.StatusError
	t.errMsg = message
	return true
}

// Clear shows the profile's own content again and cancels any pending request.
func (t *TranslationOverlay) Clear() {
	t.seq++
	t.overlay = nil
	t.status = domain.StatusIdle
	t.language = ""
	t.errMsg = ""
}

// Invalidate is Clear for a profile change.
func (t *TranslationOverlay) Invalidate() {
	t.Clear()
}

func (t *TranslationOverlay) Overlay() *domain.TranslatedContent {
	return t.overlay.Clone()
}

// TranslationState is the JSON view of the overlay.
type TranslationState struct {
	Status   domain.FetchStatus        `json:"status"`
	Language string                    `json:"language,omitempty"`
	Overlay  *domain.TranslatedContent `json:"overlay,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

func (t *TranslationOverlay) snapshot() TranslationState {
	return TranslationState{
		Status:   t.status,
		Language: t.language,
		Overlay:  t.overlay.Clone(),
		Error:    t.errMsg,
	}
}
