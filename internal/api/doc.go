// Package api handles incoming HTTP requests for the practice workflow and
// card management. Handlers decode and validate requests, call the services
// and map their errors to status codes with safe messages; raw errors are
// only ever logged, after redaction.
package api
