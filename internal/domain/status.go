package domain

// FetchStatus is the life cycle of one asynchronous fetch.
type FetchStatus string

const (
	StatusIdle    FetchStatus = "IDLE"
	StatusLoading FetchStatus = "LOADING"
	StatusSuccess FetchStatus = "SUCCESS"
	StatusError   FetchStatus = "ERROR"
)

func (s FetchStatus) String() string {
	return string(s)
}

// Settled reports whether the fetch has finished, successfully or not.
func (s FetchStatus) Settled() bool {
	return s == StatusSuccess || s == StatusError
}
