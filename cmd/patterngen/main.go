// PatternGen — deterministic 2D tile placement
//
// Reads a scene document (tile dimensions, item set, pinned obstacles,
// generation settings), runs one placement pass, and writes the result
// snapshot plus optional PDF and SVG previews.
//
// Build:
//   go build -o patterngen ./cmd/patterngen
//
// Usage:
//   patterngen -scene scene.json -out result.json [-pdf proof.pdf] [-svg preview.svg]
//
// Item lists can be imported from CSV, Excel, or DXF with -import and
// merged into the scene before generation. Interrupting a run (Ctrl-C)
// stops placement cooperatively and still writes the accepted prefix.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/piwi3910/patterngen/internal/engine"
	"github.com/piwi3910/patterngen/internal/export"
	"github.com/piwi3910/patterngen/internal/importer"
	"github.com/piwi3910/patterngen/internal/model"
	"github.com/piwi3910/patterngen/internal/project"
)

func main() {
	scenePath := flag.String("scene", "", "scene document to load (JSON)")
	outPath := flag.String("out", "result.json", "result snapshot output path (JSON)")
	pdfPath := flag.String("pdf", "", "optional PDF proof sheet output path")
	svgPath := flag.String("svg", "", "optional SVG preview output path")
	importPath := flag.String("import", "", "optional item list to merge (CSV, XLSX, or DXF)")
	seed := flag.Uint64("seed", 0, "override the scene's random seed (0 keeps the scene value)")
	useCache := flag.Bool("cache", false, "reuse the existing snapshot when inputs are unchanged")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "patterngen: -scene is required")
		flag.Usage()
		os.Exit(2)
	}

	scene, err := project.LoadScene(*scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "patterngen: %v\n", err)
		os.Exit(1)
	}

	if *importPath != "" {
		var imported importer.ImportResult
		switch strings.ToLower(filepath.Ext(*importPath)) {
		case ".xlsx":
			imported = importer.ImportExcel(*importPath)
		case ".dxf":
			imported = importer.ImportDXF(*importPath)
		default:
			imported = importer.ImportCSV(*importPath)
		}
		for _, warning := range imported.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
		if len(imported.Errors) > 0 {
			for _, msg := range imported.Errors {
				fmt.Fprintf(os.Stderr, "patterngen: %s\n", msg)
			}
			os.Exit(1)
		}
		scene.Items = append(scene.Items, imported.Items...)
		fmt.Printf("Imported %d items from %s\n", len(imported.Items), *importPath)
	}

	if *seed != 0 {
		scene.Settings.Seed = *seed
	}

	var result model.Result
	fromCache := false
	if *useCache {
		if cached, ok := project.CachedResult(*outPath, scene); ok {
			fmt.Printf("Snapshot is up to date (%d placements)\n", len(cached.Placements))
			result = cached
			fromCache = true
		}
	}

	if !fromCache {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result = engine.New(scene.Settings).Generate(ctx, scene)
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "interrupted, writing partial result")
		}

		if err := project.SaveResult(*outPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "patterngen: write result: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Placed %d of %d (seed %d, %s mode)\n",
		len(result.Placements), result.TargetCount,
		scene.Settings.Seed, scene.Settings.Mode)

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, scene, result); err != nil {
			fmt.Fprintf(os.Stderr, "patterngen: export pdf: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *pdfPath)
	}
	if *svgPath != "" {
		if err := export.ExportSVG(*svgPath, scene, result); err != nil {
			fmt.Fprintf(os.Stderr, "patterngen: export svg: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *svgPath)
	}
}
