// Package upstream holds the error type and HTTP helpers shared by every
// outbound integration (catalog service, platform adapters).
//
// A non-success status is reported as *Error. 429 and 5xx responses as well as
// transport failures are marked Retryable so that callers (and API clients) can
// decide whether to try again later.
package upstream
