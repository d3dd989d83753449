//go:build !(js && wasm)

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/RyanAllcock/SurfaceConstruction/terrain"
	"github.com/RyanAllcock/SurfaceConstruction/utils"
	"github.com/RyanAllcock/SurfaceConstruction/viewer"
)

func usage() {
	fmt.Println("Usage: surfacetool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  view [config.json]                              (open a window on the volume; P table, T points, Up/Down threshold)")
	fmt.Println("  export <config.json|-> output.glb [points]      (write the surface as .glb; .glb.zst/.glb.zz compress it)")
	fmt.Println("  stats [config.json]                             (triangle counts and digests for every table)")
	fmt.Println("  tables                                          (triangle count histogram of every table)")
	fmt.Println("  genbatch <config.json|-> <amount> <output_dir>  (export N volumes with derived seeds)")
	fmt.Println("Environment: SEED overrides the config seed.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "view":
		if len(os.Args) > 3 {
			usage()
			os.Exit(1)
		}
		if err := runView(ctx, optionalArg(2)); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "export":
		if len(os.Args) != 4 && !(len(os.Args) == 5 && os.Args[4] == "points") {
			usage()
			os.Exit(1)
		}
		if err := utils.RunExport(ctx, os.Args[2], os.Args[3], len(os.Args) == 5); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "stats":
		if len(os.Args) > 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunStats(ctx, optionalArg(2)); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "tables":
		if err := utils.RunTables(); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "genbatch":
		if len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		amount, err := strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if err := utils.RunGenerateBatch(ctx, os.Args[2], amount, 0, os.Args[4]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}

func optionalArg(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return ""
}

func runView(ctx context.Context, configPath string) error {
	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		return err
	}
	start := time.Now()
	v, err := terrain.New(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Sampling %dx%dx%d took %d ms, %s table: %d triangles\n",
		cfg.Dims[0], cfg.Dims[1], cfg.Dims[2], time.Since(start).Milliseconds(), v.VariantName(), v.Mesh().Triangles())
	return viewer.Run(v, viewer.Options{Title: "SurfaceConstruction"})
}
