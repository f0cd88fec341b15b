// Package iox holds small helpers for intentionally ignored cleanup
// errors.
package iox

import "io"

// DiscardClose closes c, dropping the error. For deferred closes where
// nothing sensible can be done with a failure:
//
//	defer iox.DiscardClose(resp.Body)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc wraps c's Close for cleanup registration:
//
//	t.Cleanup(iox.CloseFunc(conn))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// DiscardErr runs fn and drops its error. The non-Close analogue of
// DiscardClose, for deferred Flush and Sync calls:
//
//	defer iox.DiscardErr(logger.Sync)
func DiscardErr(fn func() error) { _ = fn() }
