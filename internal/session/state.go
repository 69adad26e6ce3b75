package session

// State is the controller lifecycle. Done and Aborted are terminal.
type State int32

const (
	StateIdle State = iota
	StateTitleWritten
	StateStreaming
	StateSummarizing
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTitleWritten:
		return "title_written"
	case StateStreaming:
		return "streaming"
	case StateSummarizing:
		return "summarizing"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
