// Package api handles incoming HTTP requests for the GraphQL endpoint and
// the operational endpoints. It decodes GraphQL-over-HTTP requests, hands
// them to the schema from internal/graph and writes the JSON result.
package api
