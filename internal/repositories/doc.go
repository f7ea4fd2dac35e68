// Package repositories implements stream registries and credential storage.
//
// Key Implementations:
//   - [StreamRepository] : durable registry over the SQLite streams table, duplicates allowed
//   - [MemoryStreamRepository] : transient registry addressed by list index, urls deduplicated
//   - [UserRepository] : bcrypt-hashed login credentials over the users table
//
// [NewRegistry] picks a registry from the configured backend name. The two registries are not
// switchable at runtime: a process serves from exactly one.
package repositories
