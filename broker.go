// Copyright (c) 2024 RoseLoverX

package tdcache

import "go.uber.org/zap"

// The broker correlates outgoing function calls with the single reply the
// engine eventually delivers. It never inspects replies: an error-shaped
// result flows back to the caller exactly like a success.

// Send submits a function call with an optional continuation. The handler
// fires exactly once, whenever the reply arrives, on the engine's delivery
// goroutine. There is no timeout; cancellation semantics belong to the
// caller.
func (c *Client) Send(fn Function, handler func(Object)) {
	id := c.reqID.Add(1)
	if handler != nil {
		c.pending.Add(id, handler)
	}
	c.eng().Send(id, fn)
}

// InvokeAsync submits a function call and returns a single-resolution
// future for its reply.
func (c *Client) InvokeAsync(fn Function) <-chan Object {
	ch := make(chan Object, 1)
	c.Send(fn, func(obj Object) {
		ch <- obj
	})
	return ch
}

// Invoke submits a function call and blocks until the reply arrives. Must
// not be called from an update handler: those run on the delivery
// goroutine the reply would arrive on.
func (c *Client) Invoke(fn Function) Object {
	return <-c.InvokeAsync(fn)
}

// Execute answers a synchronous-safe function inline, bypassing the
// broker entirely.
func (c *Client) Execute(fn Function) Object {
	return c.eng().Execute(fn)
}

// OnResult is the engine's delivery entry point. Replies resolve exactly
// one pending call; everything else is an update for the dispatcher.
func (c *Client) OnResult(requestID int64, obj Object) {
	if requestID != 0 {
		handler, ok := c.pending.Pop(requestID)
		if !ok {
			// Fire-and-forget calls have no registered continuation.
			return
		}
		handler(obj)
		return
	}

	if u, ok := obj.(Update); ok {
		c.processUpdate(u)
		return
	}

	c.log.Warn("engine delivered a non-update payload without a request id",
		zap.Any("payload", obj))
}

// drainPending resolves every pending call with an aborted-error reply.
// Called on session teardown so no awaitable is left hanging.
func (c *Client) drainPending() {
	for _, id := range c.pending.Keys() {
		handler, ok := c.pending.Pop(id)
		if !ok {
			continue
		}
		handler(&Error{Code: 500, Message: "request aborted"})
	}
}
