package core

import "sync"

// Notifier fans events out to subscribed listeners.
// The zero value is ready to use.
type Notifier[E any] struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(E)
	order     []int
}

// Subscribe registers fn and returns a function that removes it again.
func (n *Notifier[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.listeners == nil {
		n.listeners = make(map[int]func(E))
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.order = append(n.order, id)

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.listeners[id]; !ok {
			return
		}
		delete(n.listeners, id)
		for i, v := range n.order {
			if v == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers events to every listener in subscription order.
// Listeners run on the caller's goroutine and must not block.
func (n *Notifier[E]) Emit(events ...E) {
	if len(events) == 0 {
		return
	}

	n.mu.Lock()
	fns := make([]func(E), 0, len(n.order))
	for _, id := range n.order {
		fns = append(fns, n.listeners[id])
	}
	n.mu.Unlock()

	for _, e := range events {
		for _, fn := range fns {
			fn(e)
		}
	}
}

// Len returns the number of active listeners.
func (n *Notifier[E]) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.order)
}
