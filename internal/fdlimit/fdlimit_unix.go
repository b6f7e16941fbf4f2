//go:build unix

package fdlimit

import "golang.org/x/sys/unix"

const fallbackBudget = 1024 - Reserved

func openFileLimit() (uint64, error) {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, err
	}
	return uint64(rl.Cur), nil
}
