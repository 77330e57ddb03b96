package plugin

import "sort"

// Registry keeps one value per chart id. Entries are created when a chart
// is first seen and removed when the chart is destroyed.
type Registry[T any] struct {
	items map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

func (r *Registry[T]) Get(id string) (T, bool) {
	v, ok := r.items[id]
	return v, ok
}

// GetOrCreate returns the value for id, creating it with create when absent.
func (r *Registry[T]) GetOrCreate(id string, create func() T) T {
	if v, ok := r.items[id]; ok {
		return v
	}
	v := create()
	r.items[id] = v
	return v
}

func (r *Registry[T]) Put(id string, v T) {
	r.items[id] = v
}

func (r *Registry[T]) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

func (r *Registry[T]) Remove(id string) {
	delete(r.items, id)
}

func (r *Registry[T]) Len() int {
	return len(r.items)
}

// IDs returns the registered ids in sorted order.
func (r *Registry[T]) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Each calls fn for every entry in id order.
func (r *Registry[T]) Each(fn func(id string, v T)) {
	for _, id := range r.IDs() {
		fn(id, r.items[id])
	}
}
