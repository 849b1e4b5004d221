// Package layout positions bodies along the logarithmic scroll axis.
//
// Layout runs in three steps, all pure functions:
//
//  1. [Group] walks bodies in ascending radius order and clusters the ones
//     whose axis positions are closer than a merge threshold into a [Section].
//  2. [InsertBoosts] fills long empty stretches between consecutive sections
//     with [Boost] markers, one per full decade of scroll distance.
//  3. [Compose] runs both over a body list and returns the ordered [Layout]
//     that the render package turns into markup.
//
// # Layout Items
//
// A layout is a sequence of [Item] values, strictly ascending by Top. Item is
// a closed sum type: only [Section] and [Boost] implement it. Use [Visit] to
// handle both variants; a new variant would add a handler parameter and break
// every caller at compile time.
//
// # Example
//
//	l, err := layout.Compose(bodies, layout.Options{
//	    PixelsPerDecade: 800,
//	    MergeThreshold:  200,
//	})
//	for _, it := range l.Items {
//	    layout.Visit(it,
//	        func(s layout.Section) { fmt.Println("section", s.Top, len(s.Bodies)) },
//	        func(b layout.Boost) { fmt.Println("boost", b.Top) },
//	    )
//	}
package layout
