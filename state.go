package idpkit

import "github.com/dmitrymomot/idpkit/statemachine"

// State is the adapter's position in the authorization flow. Exactly one
// adapter instance tracks one State; state is never shared across concurrent
// logins.
type State = statemachine.StringState

const (
	StateUninitialized    State = "uninitialized"
	StateInitialized      State = "initialized"
	StateAwaitingCallback State = "awaiting_callback"
	StateAuthenticated    State = "authenticated"
	StateFailed           State = "failed"
)

// Flow events driving the state machine.
const (
	eventBegin   = statemachine.StringEvent("begin_auth")
	eventSucceed = statemachine.StringEvent("auth_succeeded")
	eventFail    = statemachine.StringEvent("auth_failed")
	eventLogout  = statemachine.StringEvent("logout")
)

// Store fields holding flow artifacts under the adapter's session key.
const (
	fieldNonce       = "auth_nonce"
	fieldAccessToken = "access_token"
	fieldTokenExpiry = "access_token_expiry"
)
