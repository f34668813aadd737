// Package sanitizer provides input normalization functions for booking and review data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully, typically by returning
// empty strings or empty slices rather than errors.
//
// The package is designed to be used across microservices for consistent data
// normalization before validation and storage.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Labels: Lowercase after whitespace normalization - "Credit Card" becomes "credit card"
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
