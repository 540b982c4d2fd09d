// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for request validation or HTTPError for API responses)
// so the admin client receives consistent, actionable error messages.
//
// Business rule violations (a category still holding dishes, a dish on
// sale, a wrong password) are predeclared here so services, handlers and
// tests share one code and one message per rule.
package errs
