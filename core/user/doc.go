// Package user defines the account entity the authentication core works
// with, its persistence contract, and registration.
//
// A User carries two independent bcrypt hashes: PasswordHash for the login
// password and RememberHash for the current "remember me" token. RememberHash
// is nil while no persistent login exists and is overwritten, never appended,
// each time a new token is issued.
//
// Repository has three implementations:
//
//   - MemoryRepository for tests and single-process demos
//   - PostgresRepository on a pgx pool, with goose migrations in Migrations
//   - BoltRepository on an embedded bbolt file
//
// Emails are stored lower-cased. Callers looking users up by email should pass
// the address through NormalizeEmail first; Service and the auth package do.
package user
