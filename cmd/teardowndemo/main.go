// Command teardowndemo exercises both tree variants through repeated
// master -> clone -> teardown -> refill cycles (spec §1: the library's
// defining use case), logging a summary of each cycle.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"teardowntree/internal/drivers"
	"teardowntree/internal/repr"
	"teardowntree/internal/sink"
	"teardowntree/intervaltree"
	"teardowntree/plaintree"
)

func main() {
	n := flag.Int("n", 1000, "number of entries in the master tree")
	cycles := flag.Int("cycles", 5, "number of teardown/refill cycles to run")
	seed := flag.Int64("seed", 1, "PRNG seed for the generated keys and deletion window")
	flag.Parse()

	log.SetFlags(0)
	runPlain(*n, *cycles, *seed)
	runInterval(*n, *cycles, *seed)
}

func runPlain(n, cycles int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	items := make([]repr.Entry[int, int], n)
	for i := range items {
		items[i] = repr.Entry[int, int]{Key: i, Val: rng.Int()}
	}

	master := plaintree.New(items)
	clone := plaintree.New(items)
	clone.Clear()
	clone.Refill(master)

	log.Printf("plaintree: master size=%d cap=%d", master.Size(), master.Cap())

	for c := 0; c < cycles; c++ {
		lo := rng.Intn(n)
		width := rng.Intn(n/4 + 1)
		out := sink.NewSlice[repr.Entry[int, int]](clone.Size())
		clone.DeleteRange(lo, lo+width, out)
		log.Printf("plaintree cycle %d: deleted [%d,%d) -> %d entries, %d remain",
			c, lo, lo+width, len(out.Items), clone.Size())
		clone.Refill(master)
	}

	onlyEven := drivers.FuncFilter[int](func(k int) bool { return k%2 == 0 })
	out := sink.NewSlice[repr.Entry[int, int]](clone.Size())
	clone.FilterRange(0, n, onlyEven, out)
	fmt.Printf("plaintree: filtered teardown removed %d even keys, %d remain\n", len(out.Items), clone.Size())
}

func runInterval(n, cycles int, seed int64) {
	rng := rand.New(rand.NewSource(seed + 1))
	ivs := make([]intervaltree.KeyInterval[int], n)
	for i := range ivs {
		lo := rng.Intn(n * 4)
		ivs[i] = intervaltree.NewKeyInterval(lo, lo+rng.Intn(10)+1)
	}
	entries := make([]repr.Entry[intervaltree.KeyInterval[int], int], n)
	for i, v := range ivs {
		entries[i] = repr.Entry[intervaltree.KeyInterval[int], int]{Key: v, Val: i}
	}

	master := intervaltree.New[int](entries)
	clone := intervaltree.New[int](entries)
	clone.Clear()
	clone.Refill(master)

	log.Printf("intervaltree: master size=%d cap=%d", master.Size(), master.Cap())

	for c := 0; c < cycles; c++ {
		lo := rng.Intn(n * 4)
		search := intervaltree.NewKeyInterval(lo, lo+rng.Intn(20)+1)
		out := sink.NewSlice[repr.Entry[intervaltree.KeyInterval[int], int]](clone.Size())
		clone.DeleteOverlap(search, out)
		log.Printf("intervaltree cycle %d: overlap query [%d,%d] -> %d entries removed, %d remain",
			c, search.Lo(), search.Hi(), len(out.Items), clone.Size())
		clone.Refill(master)
	}
}
