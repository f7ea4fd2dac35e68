// Package models defines domain entities and the interfaces the HTTP front end depends on.
//
// Entities:
//   - [StreamEntry] : a registered YouTube watch page
//   - [User] : a login credential with a bcrypt password hash
//   - [Manifests] : DASH and HLS manifest URLs extracted from one watch page
//
// Interfaces:
//   - [Registry] : stream storage, implemented in memory and in SQLite by the repositories package
//   - [Resolver] : manifest extraction, implemented by the services package
//   - [Authenticator] : credential checks, implemented by the repositories package
package models
