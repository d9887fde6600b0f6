// Package statemachine provides a small finite state machine with guarded,
// action-bearing transitions.
//
// It backs the authorization flow of the idpkit Adapter, where transition
// actions persist and clear flow artifacts so the machine can be rehydrated
// in another process:
//
//	sm := statemachine.MustNew(StateIdle,
//		statemachine.Transition{
//			From:  StateIdle,
//			To:    StatePending,
//			Event: EventBegin,
//			Actions: []statemachine.Action{persistNonce},
//		},
//	)
//
//	if err := sm.Fire(ctx, EventBegin); err != nil {
//		// NoTransitionError, RejectedError, or the action's error
//	}
package statemachine
