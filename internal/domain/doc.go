// Package domain contains the core business entities and value objects of the
// application: the ID value type and the User and Post entities. It has no
// dependencies on storage or transport packages.
//
// Entities are immutable once constructed. There are two ways to obtain one:
// the New* constructors, which generate a fresh ID for a value that storage
// has not seen yet, and the Rehydrate* constructors, which stores use to
// materialise a previously saved row verbatim.
package domain
