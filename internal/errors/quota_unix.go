//go:build unix

package errors

import "syscall"

func isQuotaExceeded(err error) bool {
	return Is(err, syscall.EDQUOT)
}
