package utils

import (
	"context"
	"runtime/debug"
	"strings"
	"unicode/utf8"
)

// GoSafe runs fn in a goroutine and recovers from panics so a single bad task
// cannot take down the process.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				debug.PrintStack()
			}
		}()
		fn()
	}()
}

// ToPointer returns a pointer to the given value.
func ToPointer[T any](v T) *T {
	return &v
}

// ShouldContinue reports whether the context is still alive.
func ShouldContinue(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}

// CleanToValidUTF8 strips invalid UTF-8 sequences and NUL bytes from s.
func CleanToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return strings.ReplaceAll(s, "\x00", "")
	}
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}
