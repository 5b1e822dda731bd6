// Package source models arrays owned by the source runtime.
//
// A source array carries an element kind, a flat component count and a
// tuple count, and answers a small closed set of layout probes:
//
//	Interleaved()  single buffer holding all components of each tuple together
//	Planar()       storage is literally one contiguous buffer per component
//	Component(i)   column i as a strided unit over some buffer
//
// Basic arrays are interleaved, SOA arrays are planar and Affine arrays are
// implicit (computed, no buffers). Every array also supports ReadValue,
// which lets a host-side wrapper forward reads lazily.
//
// Arrays are consumable: once a conversion takes a buffer's ownership the
// array must not be read again.
package source
