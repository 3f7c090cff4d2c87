// Copyright (c) 2024 RoseLoverX

package tdcache

// Object is any value produced by the remote engine: a reply to a function
// call, or an update pushed on the engine's own initiative.
type Object interface{}

// Function is a request accepted by the remote engine. Every call expects
// at most one reply.
type Function interface {
	functionName() string
}

// Update is a single self-describing state-change notification from the
// remote engine.
type Update interface {
	Object
	updateName() string
}

// ResultHandler receives everything the engine emits. Replies carry the id
// of the request they answer; updates carry id 0. The engine must invoke
// OnResult from a single delivery goroutine, in arrival order.
type ResultHandler interface {
	OnResult(requestID int64, obj Object)
}

// Engine is the remote messaging engine, treated as a black box. The cache
// relies only on ordered callback delivery and request/response pairing by
// opaque handles; the wire protocol behind it is not its concern.
type Engine interface {
	// Send submits a function call. The reply arrives later through the
	// ResultHandler under the same request id.
	Send(requestID int64, fn Function)

	// Execute answers a restricted, synchronous-safe subset of functions
	// inline, on the calling goroutine.
	Execute(fn Function) Object

	Close()
}

// EngineFactory builds a fresh engine wired to the given handler. A new
// engine is created on every (re)initialization of a session.
type EngineFactory func(handler ResultHandler) Engine

// Error is an error-shaped reply. The broker never inspects these, they
// flow back to whichever caller issued the function call.
type Error struct {
	Code    int32
	Message string
}

// Ok is the empty success reply.
type Ok struct{}
