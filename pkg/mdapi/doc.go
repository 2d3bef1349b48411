// Package mdapi provides a client for remote markdown document stores.
//
// Every operation is attempted against a primary endpoint first and, on
// any failure (transport error or non-2xx response), retried once with
// an identical request against a fallback endpoint. Failures never
// escape the client as errors or panics; each operation returns a
// Result value describing the outcome.
package mdapi
