// Package clierr holds the error taxonomy returned by the selector:
// CommandError for per-candidate hydration/validation failures, and
// Error for parse-level outcomes that reference the CommandSpecs
// involved. Both are concrete structs with an explicit Kind field and an
// Error() string method, since Go has no tagged-union error type.
package clierr
