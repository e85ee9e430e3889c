package drag

// Move returns a copy of list with the element at from moved to to.
// Out of range indices and from == to return an unchanged copy.
func Move[T any](list []T, from, to int) []T {
	out := append([]T(nil), list...)
	if from == to || !inRange(from, len(out)) || !inRange(to, len(out)) {
		return out
	}

	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}

// MoveVisible applies a move made on a filtered view to the full list.
// visible must be a subsequence of full. The dragged and target items
// are located in full by id and the dragged one is spliced to the
// target's full index, so items hidden by the filter keep their relative
// order. Moving forward lands after the target, moving backward lands
// before it, matching Move on the visible list.
func MoveVisible[T any](full, visible []T, from, to int, id func(T) string) []T {
	if from == to || !inRange(from, len(visible)) || !inRange(to, len(visible)) {
		return append([]T(nil), full...)
	}

	fullFrom, fullTo := -1, -1
	for i, item := range full {
		switch id(item) {
		case id(visible[from]):
			fullFrom = i
		case id(visible[to]):
			fullTo = i
		}
	}
	if fullFrom < 0 || fullTo < 0 {
		return append([]T(nil), full...)
	}
	return Move(full, fullFrom, fullTo)
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
