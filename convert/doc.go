// Package convert turns source-runtime arrays into host arrays.
//
// Conversion runs in three steps:
//
//  1. Type dispatch: the supported element kinds are tried in a fixed order
//     and the first that matches the source array's kind runs.
//  2. Layout classification: interleaved arrays take the AOS strategy,
//     literally planar arrays the SOA strategy, anything else is wrapped.
//  3. Per buffer, a self-owned region is adopted without copying and a
//     foreign-owned region is copied once and released once.
//
// Data on a device that does not share memory with the host is never synced
// during conversion; such arrays are wrapped and read lazily instead.
//
// The entry points never return errors. A nil result means a diagnostic with
// the array name has already been logged:
//
//	out := convert.Convert(src, "temperature")
//	if out == nil {
//	    return
//	}
//	defer out.Release()
//
// Conversion is a move: after it returns, the source array's buffers may be
// owned by the output and must not be used again.
package convert
