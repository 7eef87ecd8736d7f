package domain

// Status is the three-valued loading state of the word store.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// LoadState is the status plus the failure that produced it, if any.
// Err is non-nil only when Status is StatusFailed.
type LoadState struct {
	Status Status
	Err    error
}

// Loading is the state entered before every fetch.
func Loading() LoadState { return LoadState{Status: StatusLoading} }

// Ready is the state after a successful decode.
func Ready() LoadState { return LoadState{Status: StatusReady} }

// Failed is the state after any load failure.
func Failed(err error) LoadState { return LoadState{Status: StatusFailed, Err: err} }

// Reason returns the failure reason name, empty unless failed.
func (s LoadState) Reason() string { return Reason(s.Err) }

// Message returns the human-readable failure text, empty unless failed.
func (s LoadState) Message() string { return Message(s.Err) }
