// Package zoom converts a live scroll offset into a logarithmic zoom and
// applies it to the on-screen footprint of every body.
//
// The engine has two phases. [New] computes the zoom bounds and the scroll
// axis from the body list; it needs no host. [Engine.Bind] attaches one
// [Element] per body and returns a [Scene], which is the ready state: it maps
// scroll offsets to a percentage ([Scene.ScrollPercent]) and a percentage to
// element sizes and visibility ([Scene.Update]).
//
// Scroll events arrive far more often than the host can redraw. [FrameSlot]
// coalesces them so that at most one scene update is queued at a time and it
// always uses the most recent offset.
//
// [Run] wires everything to a [Page], the host abstraction implemented by the
// browser runtime and by the terminal preview.
package zoom
