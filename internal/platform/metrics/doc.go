// Package metrics holds the Prometheus collectors shared by the stores, the
// GraphQL layer and the HTTP middleware. Collectors are registered on the
// default registry, which is what the /metrics endpoint serves.
package metrics
