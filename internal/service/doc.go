// Package service contains the application-specific use cases for card
// management. It orchestrates the store interfaces (defined in internal/store)
// so that every multi-step write runs in a single transaction.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete database implementation. Failures are returned as
// *CardServiceError values that wrap the store or domain error, so callers can
// use errors.Is against store.ErrCardNotFound, store.ErrCardExists or
// ErrInvalidCard.
//
// The practice workflow (sessions, reviews, hints and progress) lives in the
// practice subpackage.
package service
