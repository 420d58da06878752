package types

// Result is the final state of one link transaction
type Result int

const (
	ResultFailed Result = iota
	ResultLinked
	ResultAlreadyLinked
	ResultSkipped
)

func (r Result) String() string {
	switch r {
	case ResultLinked:
		return "linked"
	case ResultAlreadyLinked:
		return "already_linked"
	case ResultSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Succeeded reports whether the destination points at the source afterwards
func (r Result) Succeeded() bool {
	return r == ResultLinked || r == ResultAlreadyLinked
}

// Outcome records what happened to one entry in a batch
type Outcome struct {
	// Index is the 1-based manifest position
	Index  int
	Entry  DotfileEntry
	Status LinkStatus
	Result Result
	// Backup is where the previous destination was copied, if anywhere
	Backup string
	// Err carries the per-entry failure; it never aborts the batch
	Err error
}

// Summary aggregates a batch run
type Summary struct {
	Attempted int
	// Linked counts entries that end up linked, including already linked ones
	Linked   int
	Outcomes []Outcome
	// BackupDir is set when at least one backup was written during the run
	BackupDir string
}

// Failed returns the outcomes that did not succeed or get skipped
func (s Summary) Failed() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if o.Result == ResultFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Count returns how many outcomes ended with r
func (s Summary) Count(r Result) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Result == r {
			n++
		}
	}
	return n
}
