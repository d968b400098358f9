// Package palette assigns display colors to annotation categories.
//
// Colors are generated by stepping the hue of the previous color by the
// golden-ratio conjugate of a full turn, which keeps consecutive colors far
// apart on the color wheel while staying deterministic for a given seed.
//
// # Color Mapping
//
// AutoMapper remembers the color of every category it has seen, in insertion
// order. The first category receives the mapper's first color; every new
// category after that receives Next applied to the most recently inserted
// color. Replaying the same sequence of distinct categories therefore always
// yields the same colors.
//
// # Thread Safety
//
// AutoMapper is not safe for concurrent use. Wrap it in a SyncMapper when one
// mapper is shared between goroutines.
package palette
