// Package metrics declares the prometheus collectors of the service.
//
// Collectors are registered on the default registry at init through promauto and
// exposed on GET /metrics by the start command.
package metrics
