// Package http contains the chi HTTP handlers for the estimation API.
//
// Handlers decode and validate request DTOs, call the service layer, and
// map domain errors to the APIError envelope. Invalid house input maps to
// 400, a broken market profile to 500.
package http
