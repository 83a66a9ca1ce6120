package rollup

// orderedGroups 按插入顺序记录分组键的累加器
type orderedGroups[T any] struct {
	keys  []string
	items map[string]*T
}

func newOrderedGroups[T any]() *orderedGroups[T] {
	return &orderedGroups[T]{items: make(map[string]*T)}
}

// get 返回 key 对应的累加项，首次出现时创建
func (g *orderedGroups[T]) get(key string) *T {
	if item, ok := g.items[key]; ok {
		return item
	}
	item := new(T)
	g.items[key] = item
	g.keys = append(g.keys, key)
	return item
}
