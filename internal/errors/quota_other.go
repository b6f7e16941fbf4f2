//go:build !unix

package errors

func isQuotaExceeded(error) bool {
	return false
}
