package device

const (
	sectionMemory = 0x05
	sectionExport = 0x07
	externMemory  = 0x02
	pageSize      = 65536
)

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// memoryModule encodes a core module that only defines and exports one
// linear memory of the given page count.
func memoryModule(exportName string, pages uint32) []byte {
	var mem []byte
	mem = appendU32(mem, 1) // one memory
	mem = append(mem, 0x01) // limits: min and max
	mem = appendU32(mem, pages)
	mem = appendU32(mem, pages)

	var exp []byte
	exp = appendU32(exp, 1)
	exp = appendU32(exp, uint32(len(exportName)))
	exp = append(exp, exportName...)
	exp = append(exp, externMemory)
	exp = appendU32(exp, 0)

	out := append([]byte(nil), wasmHeader...)
	out = appendSection(out, sectionMemory, mem)
	out = appendSection(out, sectionExport, exp)
	return out
}

func appendSection(out []byte, id byte, data []byte) []byte {
	out = append(out, id)
	out = appendU32(out, uint32(len(data)))
	return append(out, data...)
}

// appendU32 appends an unsigned LEB128 encoded uint32.
func appendU32(out []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}
