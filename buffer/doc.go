// Package buffer models contiguous memory regions owned by the source array
// runtime and the one-shot transfer of their ownership.
//
// A Buffer wraps a Storage supplied by a device. Taking a buffer yields a
// Ticket in one of two forms:
//
//	*Owned     the bytes are the whole allocation; the receiver may adopt them
//	           and must call Release when it is done with them
//	*Borrowed  the bytes are a view inside a larger container; the receiver
//	           must copy them and then call Release exactly once
//
// Take succeeds at most once per buffer. After a successful Take the source
// no longer owns the memory and both Read and Take fail with
// KindAlreadyTransferred.
package buffer
