// Package http contains the HTTP handlers for the dashboard API. Each
// handler owns one resource, exposes its routes as a chi.Router, and
// reports failures as RFC 7807 problem details through the shared
// error handler. Handlers stay thin: they decode and validate the
// request, call the service layer, and render the response envelope.
package http
