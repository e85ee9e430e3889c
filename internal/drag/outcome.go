package drag

// Outcome is what a drop did.
type Outcome int

const (
	None Outcome = iota
	Reordered
	Recategorized
	Added
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Reordered:
		return "reordered"
	case Recategorized:
		return "recategorized"
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	default:
		return "none"
	}
}
