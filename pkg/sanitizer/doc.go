// Package sanitizer normalizes user-supplied directory and booking input before it is
// validated and stored.
//
// All functions are idempotent and never fail: input that cannot be normalized comes
// back empty (phones) or trimmed (free text), and validation decides what to reject.
//
// Normalization includes:
//   - Phone numbers: E.164 via libphonenumber, with a configurable default region
//   - Names: trimmed, internal whitespace collapsed
//   - Emails: trimmed and lowercased
//   - Free text (descriptions, medical notes): trimmed, control characters dropped
package sanitizer
