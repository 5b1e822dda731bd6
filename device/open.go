package device

import (
	"context"

	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/errors"
)

// DefaultWasmPages is the linear memory size used when none is configured.
const DefaultWasmPages = 16

// Open creates the device registered under name.
func Open(ctx context.Context, name string, wasmPages uint32) (arraybridge.Device, error) {
	switch name {
	case "", "host":
		return NewHost(), nil
	case "discrete":
		return NewDiscrete(), nil
	case "wasm":
		if wasmPages == 0 {
			wasmPages = DefaultWasmPages
		}
		return NewWasm(ctx, wasmPages)
	default:
		return nil, errors.NotFound(errors.PhaseDevice, "device", name)
	}
}

// Names lists the devices Open accepts.
func Names() []string {
	return []string{"host", "discrete", "wasm"}
}
