package notify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPublisher_DeliversInOrder(t *testing.T) {
	var p Publisher
	var got []string

	p.Attach("value", func(c Change) { got = append(got, "first:"+c.Property) })
	p.Attach("", func(c Change) { got = append(got, "all:"+c.Property) })
	p.Attach("valid", func(c Change) { got = append(got, "valid:"+c.Property) })

	p.Publish(Change{Property: "value", Old: "", New: "1"})
	p.Publish(Change{Property: "valid", Old: false, New: true})

	want := []string{"first:value", "all:value", "all:valid", "valid:valid"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestPublisher_DetachDuringPublish(t *testing.T) {
	var p Publisher
	calls := 0
	var handle int
	handle = p.Attach("", func(Change) {
		calls++
		p.Detach(handle)
	})
	p.Attach("", func(Change) { calls++ })

	p.Publish(Change{Property: "value"})
	p.Publish(Change{Property: "value"})

	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if p.Len() != 1 {
		t.Fatalf("expected 1 subscription, got %d", p.Len())
	}
}

func TestPublisher_NilHandlerAndUnknownHandle(t *testing.T) {
	var p Publisher
	if h := p.Attach("value", nil); h != -1 {
		t.Fatalf("nil handler yielded handle %d", h)
	}
	p.Detach(42)
	if p.Len() != 0 {
		t.Fatalf("unexpected subscriptions")
	}
}

func TestPublisher_PublishIfChanged(t *testing.T) {
	var p Publisher
	count := 0
	p.Attach("", func(Change) { count++ })

	p.PublishIfChanged("valid", true, true)
	p.PublishIfChanged("valid", true, false)

	if count != 1 {
		t.Fatalf("expected a single change, got %d", count)
	}
}
