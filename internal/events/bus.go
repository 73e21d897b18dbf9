package events

import "sync"

// Collection names one of the persisted collections. Subscribers receive
// the collection that changed and reload whatever they render from it.
type Collection string

const (
	Products           Collection = "products"
	InventoryBatches   Collection = "inventory_batches"
	ConsumptionRecords Collection = "consumption_records"
	Notifications      Collection = "notifications"
)

// Bus fans collection-change events out to subscribers. There is a single
// writer context, so callbacks run synchronously on the publisher's
// goroutine; subscribers must not block.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Collection)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Collection))}
}

// Subscribe registers fn and returns its unsubscribe function.
func (b *Bus) Subscribe(fn func(Collection)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(c Collection) {
	b.mu.Lock()
	fns := make([]func(Collection), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
