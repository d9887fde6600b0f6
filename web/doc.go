// Package web mounts the authentication flow on an HTTP router.
//
// Every configured provider gets four routes under its name:
//
//	GET /{provider}/login     redirect the browser to the provider
//	GET /{provider}/callback  finish the code exchange
//	GET /{provider}/logout    discard local session artifacts
//	GET /{provider}/profile   normalized profile as JSON
//
// Sessions are keyed by an opaque cookie so the callback leg can rehydrate
// the flow started by the login leg, including in another process.
package web
