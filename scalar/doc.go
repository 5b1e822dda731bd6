// Package scalar defines the closed set of numeric element types that can
// cross between the source and host array runtimes.
//
// Kind is the runtime tag carried by every array. Number is the matching
// compile-time constraint used by the generic host arrays and strategies:
//
//	scalar.KindOf[float32]() // scalar.KindFloat32
//	scalar.KindFloat64.Size() // 8
//
// Kinds lists the set in the fixed order used for type dispatch.
package scalar
