// Package filesystem adapts local disk operations to the media ports:
// existence checks, scratch artifacts and cross-process path locks.
package filesystem
