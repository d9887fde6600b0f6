// Package store persists authorization flow artifacts across the two legs of
// an OAuth2 redirect flow.
//
// The flow's first leg (building the redirect) and second leg (handling the
// callback) arrive as independent HTTP requests, potentially served by
// different process instances. The CSRF state nonce and the access token
// therefore live in a Store keyed by session rather than in adapter memory.
//
// Four implementations are provided:
//
//   - MemoryStore: in-process, for tests and single-instance deployments
//   - RedisStore: one hash per session with TTL refresh on write
//   - PostgresStore: one row per (session, field), schema applied via Migrate
//   - MongoStore: one document per session
//
// All implementations provide read-after-write consistency per session key,
// which the broker relies on when rehydrating a flow in Initialize.
package store
