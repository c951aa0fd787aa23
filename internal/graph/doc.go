// Package graph defines the GraphQL schema and its resolvers.
//
// Resolvers adapt between GraphQL values and domain types. They resolve the
// stores and use cases they need from a container on every call, parse
// incoming ids with domain.ParseID and turn the store error taxonomy into
// typed GraphQL errors (see Error). Queries report a missing entity as
// null, never as an error.
package graph
