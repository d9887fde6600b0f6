// Package facebook implements an identity provider adapter for Facebook
// Login built on the Graph API.
package facebook
