// Package server provides HTTP routing, middleware, sessions and the handlers of the stream redirector.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns internally.
//
// # Routes
//
//	GET  /                        → HTML listing and add form (login required when auth is enabled)
//	POST /add-url                 → register a watch page, 302 back to /
//	GET  /stream/{id}/master.mpd  → 302 to the DASH manifest of entry {id}
//	GET  /stream/{id}/master.m3u8 → 302 to the HLS manifest of entry {id}
//	GET  /hls/{name}.m3u8         → 302 to the HLS manifest of the entry named {name}
//	GET  /dash/{name}.mpd         → 302 to the DASH manifest of the entry named {name}
//	POST /fetch-urls              → JSON {dash, hls} for a posted {url, name}, entry persisted (session)
//	GET  /streams                 → JSON list of entries (session)
//	GET  /login, POST /login      → login form and credential check
//	POST /logout                  → destroy the session
//
// Unknown ids and names answer 404. A watch page that cannot be fetched, or that no longer
// carries the manifest field, answers 500 with the same body either way.
//
// # Sessions
//
// [Sessions] keeps login state server side with scs, in the SQLite sessions table when a
// database is configured. Protected routes only check that a username is present.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [AuthHandler] is registered this way.
package server
