// Package sanitizer holds small, stateless helpers for cleaning user input
// before it is displayed, logged or used in a message header.
//
// Helpers are plain functions and can be chained:
//
//	subject := sanitizer.Apply(name,
//		sanitizer.RemoveControlChars,
//		sanitizer.SingleLine,
//	)
package sanitizer
