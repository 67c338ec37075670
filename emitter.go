package kite

import "slices"

// emitter runs change listeners synchronously, in the order they were added.
type emitter struct {
	listeners []*listener
}

type listener struct {
	fn func()
}

// add registers fn and returns a function that unregisters it again.
func (em *emitter) add(fn func()) (remove func()) {
	l := &listener{fn: fn}
	em.listeners = append(em.listeners, l)
	return func() {
		em.listeners = slices.DeleteFunc(em.listeners, func(o *listener) bool { return o == l })
	}
}

func (em *emitter) emit() {
	if len(em.listeners) == 0 {
		return
	}
	// Listeners may remove themselves while we iterate.
	for _, l := range slices.Clone(em.listeners) {
		l.fn()
	}
}
