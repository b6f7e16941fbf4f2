//go:build !unix

package fdlimit

// The C runtime default stream limit on Windows.
const fallbackBudget = 512 - Reserved

func openFileLimit() (uint64, error) {
	return 0, nil
}
