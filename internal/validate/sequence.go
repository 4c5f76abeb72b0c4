package validate

// compareOrdered walks two sequences position by position. A length
// difference or the first position where eq fails is reported through
// onMismatch with that position; equal sequences return nil.
func compareOrdered[T any](expected, actual []T, eq func(a, b T) bool, onMismatch func(pos int) error) error {
	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		if !eq(expected[i], actual[i]) {
			return onMismatch(i)
		}
	}
	if len(expected) != len(actual) {
		return onMismatch(n)
	}
	return nil
}

func equalComparable[T comparable](a, b T) bool { return a == b }
