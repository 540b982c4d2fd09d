// Package lib groups the infrastructure helpers that do not belong to a layer.
//
// It contains blob storage for uploads, background jobs (asynq on Redis),
// admin token signing and small shared utilities.
package lib
