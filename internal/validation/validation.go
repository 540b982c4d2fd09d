// Package validation binds request payloads and checks them against their
// validator tags.
//
// Failures come back as a 400 errs.HTTPError whose field errors use the
// names the client sent (json, query or param tag).
package validation
