// Copyright (c) 2024 RoseLoverX

package tdcache

import (
	"strings"
	"sync"
	"time"
)

// How long a first caller waits for the underlying lookup before giving
// up. The call itself is never canceled: a late reply still fills the
// cache for subsequent callers.
const lookupTimeout = 2 * time.Second

// asyncLookup caches the result of one expensive engine lookup. The
// underlying call is issued at most once per session, no matter how many
// callers race the first resolution; every waiter observes the same
// outcome. A timed-out or failed lookup resolves to "not found" and is not
// retried, but an out-of-band fill still updates the cache.
type asyncLookup[T any] struct {
	mu     sync.Mutex
	value  T
	ok     bool
	issued bool
	done   chan struct{}

	// timeout overrides how long the first caller waits; zero means
	// lookupTimeout.
	timeout time.Duration
}

// cached returns the resolved value, if any.
func (l *asyncLookup[T]) cached() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.ok
}

// fill stores a value arriving from any source, late replies and
// out-of-band updates included, and resolves the in-flight future if one
// is still open.
func (l *asyncLookup[T]) fill(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.value = v
	l.ok = true
	if l.done != nil {
		close(l.done)
		l.done = nil
	}
}

// finish resolves the in-flight future without a value.
func (l *asyncLookup[T]) finish() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done != nil {
		close(l.done)
		l.done = nil
	}
}

// resolve returns the cached value, awaits an in-flight resolution, or
// issues the underlying call, racing it against lookupTimeout.
func (l *asyncLookup[T]) resolve(run func() (T, bool)) (T, bool) {
	l.mu.Lock()
	if l.ok {
		v := l.value
		l.mu.Unlock()
		return v, true
	}
	if l.done != nil {
		d := l.done
		l.mu.Unlock()
		<-d
		return l.cached()
	}
	if l.issued {
		// Resolved to "not found" earlier; no automatic retry.
		l.mu.Unlock()
		var zero T
		return zero, false
	}
	l.issued = true
	d := make(chan struct{})
	l.done = d
	wait := l.timeout
	if wait <= 0 {
		wait = lookupTimeout
	}
	l.mu.Unlock()

	go func() {
		if v, ok := run(); ok {
			l.fill(v)
		} else {
			l.finish()
		}
	}()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-d:
	case <-timer.C:
		l.finish()
	}
	return l.cached()
}

// reset clears the slot for a fresh session.
func (l *asyncLookup[T]) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	l.value = zero
	l.ok = false
	l.issued = false
	if l.done != nil {
		close(l.done)
		l.done = nil
	}
}

const defaultAnimatedEmojiSetName = "AnimatedEmojies"

// AnimatedEmojiSet resolves the animated-emoji sticker set, querying the
// engine at most once per session. Returns false when the set is not
// known, either because the lookup timed out or because the engine does
// not have it.
func (c *Client) AnimatedEmojiSet() (*StickerSet, bool) {
	return c.animatedEmojiSet.resolve(func() (*StickerSet, bool) {
		set, ok := c.Invoke(&SearchStickerSet{Name: c.animatedEmojiSetName()}).(*StickerSet)
		return set, ok
	})
}

func (c *Client) animatedEmojiSetName() string {
	if name := c.OptionString("animated_emoji_sticker_set_name"); name != "" {
		return name
	}
	return defaultAnimatedEmojiSetName
}

// handleStickerSet feeds an out-of-band sticker-set update into the
// animated-emoji slot so future callers see it without re-querying.
func (c *Client) handleStickerSet(set *StickerSet) {
	if set == nil {
		return
	}
	if strings.EqualFold(set.Name, c.animatedEmojiSetName()) {
		c.animatedEmojiSet.fill(set)
	}
}
