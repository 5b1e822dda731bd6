// Package arraybridge moves numeric arrays from a device-capable source
// runtime into host-resident arrays, transferring buffer ownership instead of
// copying whenever that is safe.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	arraybridge/         Root package with core Device and Allocator interfaces
//	├── scalar/          Closed set of element types and byte reinterpretation
//	├── buffer/          Buffers and one-shot ownership tickets
//	├── source/          Source-runtime arrays (interleaved, planar, implicit)
//	├── host/            Host-runtime arrays (AOS, SOA, view wrappers, points)
//	├── device/          Memory backends: Go heap, discrete device, wazero memory
//	├── convert/         Type dispatch, layout classification and strategies
//	├── metrics/         Prometheus counters for conversion outcomes
//	├── config/          Configuration loading
//	├── errors/          Structured error types for debugging
//	├── internal/        Scenario builder and HTTP surface
//	└── cmd/arraybridge/ Command line tool (run, inspect, serve)
//
// # Quick Start
//
// Convert a planar array produced by the source runtime:
//
//	src, err := source.SOAFromSlices(xs, ys, zs)
//	if err != nil {
//	    return err
//	}
//	out := convert.Convert(src, "velocity")
//	if out == nil {
//	    // diagnostic already logged
//	    return
//	}
//	defer out.Release()
//
// # Ownership
//
// Conversion is a move. When a source buffer is its own allocation the output
// array adopts it without copying and the source buffer becomes unusable.
// Views into larger allocations are copied and their container released.
// Arrays whose layout cannot be adopted, or whose data sits on a device that
// does not share memory with the host, are wrapped and read lazily.
//
// # Thread Safety
//
// Converting different source arrays concurrently is safe. Converting the
// same source array from two goroutines is not: buffer transfer is
// destructive and must be serialized by the caller.
package arraybridge
