// Package host implements the host-resident arrays produced by conversion.
//
// Three shapes exist:
//
//	AOS[T]   one buffer, components of each tuple stored together
//	SOA[T]   one buffer per component
//	View[T]  no buffer; every read is forwarded to the source array
//
// Arrays are reference counted. A new array starts with one reference, which
// belongs to whoever created it; the last Release runs the release callbacks
// installed with the adopted buffers. Points wraps an array as a positional
// tuple container.
package host
