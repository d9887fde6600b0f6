// Package google implements an identity provider adapter for Google
// Sign-In built on the OAuth2 userinfo endpoint.
package google
