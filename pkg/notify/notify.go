// Package notify implements the named-property change broadcast used by typed
// values and records. Delivery is synchronous and follows subscription order;
// every handler registered at the moment Publish is called receives the
// change before Publish returns.
package notify

// Change describes a single property transition.
type Change struct {
	Property string
	Old      any
	New      any
}

// Handler receives published changes.
type Handler func(Change)

type subscription struct {
	handle   int
	property string
	handler  Handler
}

// Publisher owns the subscriber list of one value or record. The zero value is
// ready to use. A Publisher is not safe for concurrent use.
type Publisher struct {
	next int
	subs []subscription
}

// Attach registers handler for property and returns a handle for Detach. An
// empty property subscribes to every change. A nil handler is ignored and
// yields -1.
func (p *Publisher) Attach(property string, handler Handler) int {
	if handler == nil {
		return -1
	}
	p.next++
	p.subs = append(p.subs, subscription{
		handle:   p.next,
		property: property,
		handler:  handler,
	})
	return p.next
}

// Detach removes the subscription identified by handle. Unknown handles are
// ignored.
func (p *Publisher) Detach(handle int) {
	for i, sub := range p.subs {
		if sub.handle == handle {
			p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
			return
		}
	}
}

// Len reports the number of active subscriptions.
func (p *Publisher) Len() int {
	return len(p.subs)
}

// Publish delivers change to the subscribers registered for its property (and
// to catch-all subscribers). Subscriptions added or removed by a handler take
// effect from the next Publish call.
func (p *Publisher) Publish(change Change) {
	if len(p.subs) == 0 {
		return
	}
	snapshot := append([]subscription(nil), p.subs...)
	for _, sub := range snapshot {
		if sub.property != "" && sub.property != change.Property {
			continue
		}
		sub.handler(change)
	}
}

// PublishIfChanged publishes only when old and new differ. Both values must be
// comparable.
func (p *Publisher) PublishIfChanged(property string, old, new any) {
	if old == new {
		return
	}
	p.Publish(Change{Property: property, Old: old, New: new})
}
