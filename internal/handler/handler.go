// Package handler is the HTTP layer of the admin API.
//
// Each endpoint binds and validates its request through the validation
// package, calls one service method and wraps the result in the
// {code, message, data} envelope. Errors are left to the global error handler.
package handler
