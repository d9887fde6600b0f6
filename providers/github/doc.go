// Package github implements an identity provider adapter for GitHub OAuth
// built on the REST API. Unlike most adapters it supports the contacts
// capability, backed by the follower list.
package github
