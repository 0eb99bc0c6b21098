// Package client talks to the remote auth API.
//
// # Overview
//
// The package provides:
//  1. The Client contract: one JSON request to baseURL+endpoint.
//  2. HTTPClient, the net/http implementation. Every request carries
//     "Content-Type: application/json" and whatever cookies the jar holds,
//     so the session cookie set by /signin travels with later calls.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are classified into typed errors, matched with errors.As:
//
//   - *TransportError: no response (DNS, connection refused, timeout).
//   - *StatusError: non-2xx; message "HTTP error! status: <code>".
//   - *DecodeError: 2xx whose body is not JSON.
//
// A 2xx body carrying an "error" member is NOT a failure at this layer; see
// services for the actions that look at it.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Do honors ctx cancellation.
package client
