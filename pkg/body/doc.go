// Package body defines the Body record and the sources bodies are loaded from.
//
// A [Body] is one comparable physical entity: a planet, a moon, a comet or,
// as a joke category, an astronaut. Every body reaching the layout and zoom
// packages has a strictly positive radius in kilometres; the loaders in this
// package reject anything else before it gets there.
//
// # Sources
//
// Two [Source] implementations are provided:
//
//   - [DirSource] reads a data directory with one subdirectory per body,
//     containing data.json (or data.toml / data.yaml) and an optional README.md.
//   - [MongoSource] reads the same record shape from a MongoDB collection.
//
// Both normalise records the same way: the name defaults to the id, the color
// defaults to "#eeeeee", a record with a height instead of a radius is an
// astronaut, and the result is sorted ascending by radius.
//
//	src := body.DirSource{Dir: "data/bodies", Logger: logger}
//	bodies, err := src.Load(ctx)
package body
