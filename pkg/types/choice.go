package types

// Choice is the answer to an overwrite confirmation
type Choice int

const (
	ChoiceNo Choice = iota
	ChoiceYes
	// ChoiceAll approves this entry and every remaining one in the batch
	ChoiceAll
)

func (c Choice) String() string {
	switch c {
	case ChoiceYes:
		return "yes"
	case ChoiceAll:
		return "all"
	default:
		return "no"
	}
}

// Approved reports whether the choice allows the overwrite to proceed
func (c Choice) Approved() bool {
	return c == ChoiceYes || c == ChoiceAll
}
