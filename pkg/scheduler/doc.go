// Package scheduler coalesces "the model changed" notifications so that a
// view root is redrawn at most once per frame under load, while the first
// change after a quiet period is drawn immediately.
//
// An Animator is a three-state machine:
//
//	Idle     --Notify-->  draw now, request frame       --> Pending
//	Pending  --Notify-->  remember model                --> Extra
//	Extra    --Notify-->  remember model                --> Extra
//	Pending  --frame--->                                --> Idle
//	Extra    --frame--->  draw latest, request frame    --> Pending
//
// Each view root owns its own Animator, so independent roots never share
// state.
package scheduler
