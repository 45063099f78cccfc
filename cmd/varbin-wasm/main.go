//go:build js && wasm

// Command varbin-wasm exposes the binning core to a browser host.
//
//	GOOS=js GOARCH=wasm go build -o varbin.wasm ./cmd/varbin-wasm
//
// After instantiation the page calls
//
//	binVariantsByChromosome(chromosomes, positions, selected, binSize)
//
// and gets a Uint32Array of counts, or an Error whose message is the Go error.
// Arguments of the wrong JS type also yield an Error.
//
// Tests run under node:
//
//	GOOS=js GOARCH=wasm go test -exec "$(go env GOROOT)/lib/wasm/go_js_wasm_exec" ./cmd/varbin-wasm
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"syscall/js"

	"varbin-core/binning"
)

func jsError(format string, a ...any) js.Value {
	return js.Global().Get("Error").New(fmt.Sprintf(format, a...))
}

func isArray(v js.Value) bool {
	return js.Global().Get("Array").Call("isArray", v).Bool()
}

func toUint32(v js.Value, what string) (uint32, error) {
	if v.Type() != js.TypeNumber {
		return 0, fmt.Errorf("%s: want number, got %s", what, v.Type())
	}
	f := v.Float()
	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s: %v is not a uint32", what, f)
	}
	return uint32(f), nil
}

func binVariantsByChromosome(_ js.Value, args []js.Value) any {
	if len(args) != 4 {
		return jsError("binVariantsByChromosome: want 4 arguments, got %d", len(args))
	}
	chrV, posV, selV := args[0], args[1], args[2]
	if !isArray(chrV) {
		return jsError("binVariantsByChromosome: chromosomes: want array, got %s", chrV.Type())
	}
	if !isArray(posV) {
		return jsError("binVariantsByChromosome: positions: want array, got %s", posV.Type())
	}
	if selV.Type() != js.TypeString {
		return jsError("binVariantsByChromosome: selected: want string, got %s", selV.Type())
	}

	chromosomes := make([]string, chrV.Length())
	for i := range chromosomes {
		v := chrV.Index(i)
		if v.Type() != js.TypeString {
			return jsError("binVariantsByChromosome: chromosomes[%d]: want string, got %s", i, v.Type())
		}
		chromosomes[i] = v.String()
	}
	positions := make([]uint32, posV.Length())
	for i := range positions {
		p, err := toUint32(posV.Index(i), fmt.Sprintf("positions[%d]", i))
		if err != nil {
			return jsError("binVariantsByChromosome: %v", err)
		}
		positions[i] = p
	}
	binSize, err := toUint32(args[3], "binSize")
	if err != nil {
		return jsError("binVariantsByChromosome: %v", err)
	}

	counts, err := binning.ByChromosome(chromosomes, positions, selV.String(), binSize)
	if err != nil {
		return jsError("binVariantsByChromosome: %v", err)
	}

	out := js.Global().Get("Uint32Array").New(len(counts))
	if len(counts) > 0 {
		buf := make([]byte, 4*len(counts))
		for i, c := range counts {
			binary.LittleEndian.PutUint32(buf[4*i:], c)
		}
		js.CopyBytesToJS(js.Global().Get("Uint8Array").New(out.Get("buffer")), buf)
	}
	return out
}

func main() {
	js.Global().Set("binVariantsByChromosome", js.FuncOf(binVariantsByChromosome))
	select {}
}
