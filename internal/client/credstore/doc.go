// Package credstore persists the client's bearer token.
//
// A Store holds exactly one value under common.AccessTokenKey. Backends:
//
//   - MemoryStore    process memory; tests and throwaway sessions
//   - MetadataStore  the local SQLite metadata table (default)
//   - KeyringStore   the OS keyring (macOS Keychain, Secret Service, WinCred)
//   - RedisStore     a redis key, for sessions shared between hosts
//
// SealedStore wraps any of them and encrypts the value at rest.
//
// Stores do no locking across operations: when login and logout race, the
// last write wins.
package credstore
