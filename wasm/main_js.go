//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/RyanAllcock/SurfaceConstruction/api"
)

// volume2glb takes an optional JSON config string and an optional boolean
// asking for the lattice points, and returns .glb bytes.
func volume2glb(this js.Value, args []js.Value) any {
	var cfg []byte
	if len(args) > 0 && args[0].Type() == js.TypeString {
		cfg = []byte(args[0].String())
	}
	opts := api.ExportOptions{}
	if len(args) > 1 && args[1].Type() == js.TypeBoolean {
		opts.Points = args[1].Bool()
	}
	out, err := api.ConfigJSONToGLB(context.Background(), cfg, opts)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

// decompress undoes the codec named by a file name (".zst", ".zz") on a
// Uint8Array.
func decompress(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing bytes or file name")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.Decompress(buf, api.CompressionForPath(args[1].String()))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func main() {
	js.Global().Set("volume2glb", js.FuncOf(volume2glb))
	js.Global().Set("decompress", js.FuncOf(decompress))
	select {}
}
