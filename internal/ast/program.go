package ast

import "sync"

// Program is the tree shared by every file of a compile session.
// Files may be parsed concurrently, so all access goes through the mutex.
type Program struct {
	mu    sync.Mutex
	items *Arena[Item]
}

func NewProgram() *Program {
	return &Program{items: NewArena[Item](16)}
}

// Add appends the items of one file as a unit and returns their ids.
func (p *Program) Add(items ...Item) []ItemID {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]ItemID, 0, len(items))
	for _, it := range items {
		ids = append(ids, ItemID(p.items.Allocate(it)))
	}
	return ids
}

// Get returns a copy of the item.
func (p *Program) Get(id ItemID) (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	it := p.items.Get(uint32(id))
	if it == nil {
		return Item{}, false
	}
	return *it, true
}

func (p *Program) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.items.Len())
}

// Items returns a snapshot of all items in insertion order.
func (p *Program) Items() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Item(nil), p.items.Slice()...)
}
