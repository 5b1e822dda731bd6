// Package errors provides structured error types for the arraybridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the array name, element type and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAllocate, errors.KindAllocationTooLarge).
//		Array("velocity").
//		Element("f32").
//		Detail("%d elements of %d bytes", n, 4).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AllocationTooLarge(errors.PhaseAllocate, n, 4)
//	err := errors.AlreadyTransferred(errors.PhaseTransfer, 1024)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
