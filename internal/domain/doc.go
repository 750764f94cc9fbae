// Package domain contains the core model for libris: books, users, loans,
// the login state machine and the client configuration.
//
// The domain is transport- and persistence-agnostic: it does not depend on
// net/http, YAML parsing or any key-value backend. Infra/adapters map
// into/from these types.
package domain
