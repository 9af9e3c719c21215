//go:build !unix

package fsutil

func isEXDEV(error) bool { return false }
