// Package fdlimit reports how many chunk files a merge may hold open at once.
package fdlimit

// Reserved descriptors kept back for stdio, the output file, the log file and
// the history database.
const Reserved = 16

// MergeBudget returns the number of chunk cursors that fit under the process
// open-file limit. It never returns less than 1.
func MergeBudget() int {
	limit, err := openFileLimit()
	if err != nil || limit == 0 {
		return fallbackBudget
	}
	return budgetFrom(limit)
}

func budgetFrom(limit uint64) int {
	if limit <= Reserved+1 {
		return 1
	}
	budget := limit - Reserved
	const maxInt = int(^uint(0) >> 1)
	if budget > uint64(maxInt) {
		return maxInt
	}
	return int(budget)
}
