// Package api implements the HTTP handlers for the service. Handlers do
// parameter extraction, JSON marshaling and transport encoding only; all
// data access goes through the store interfaces.
package api
