package repr

// Entry is a key/value pair stored in a plain tree node.
type Entry[K any, V any] struct {
	Key K
	Val V
}

// Cmp compares a fixed query against a candidate node, the same way
// sort.Search's comparator works: negative means the query sorts before
// the node's key (descend left), zero means equal (found), positive means
// the query sorts after the node's key (descend right). Callers close
// over the query, which lets the query be a cheaper or borrowed type than
// the stored key (spec §4.1: "Uses PartialOrd<K> so callers can query by
// a type cheaper than K").
type Cmp[N any] func(node N) int
