// Package service contains the application use cases. Each use case builds
// a fresh domain entity and persists it through exactly one store call.
//
// Use cases never validate input and never reinterpret store failures:
// whatever error the store returns reaches the caller as the same value,
// so callers keep using errors.Is/errors.As against the store taxonomy.
// Services receive their stores through constructor injection.
package service
