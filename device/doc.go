// Package device provides the memory spaces that hold source-runtime buffers.
//
// Three devices are available:
//
//	Host      Go heap; buffers are self-owned unless created as views
//	Discrete  a device that does not share memory with the host; buffers
//	          become host resident only after an explicit sync
//	Wasm      linear memory of a wazero module; buffers are regions of one
//	          shared container and must be copied out, then freed
//
// Open selects a device by name for configuration driven callers.
package device
