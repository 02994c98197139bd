package main

// Render the sample document in every template:
//   go run ./cmd/renderdemo -out ./out
//   go run ./cmd/renderdemo -out ./out -pdf

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resume-studio/internal/document"
	"resume-studio/internal/export"
	"resume-studio/internal/preview"
	"resume-studio/internal/render"
)

func main() {
	outDir := flag.String("out", "./out", "output directory")
	lang := flag.String("lang", "en", "label language (en or fr)")
	withPDF := flag.Bool("pdf", false, "also export each page to PDF through headless Chrome")
	chromePath := flag.String("chrome", os.Getenv("CHROME_PATH"), "Chrome executable; empty uses the default lookup")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	reg := render.DefaultRegistry()
	labels := render.LabelsFor(*lang)
	now := time.Now()
	var raster export.Rasterizer
	if *withPDF {
		raster = export.WithRetry(export.NewChromeRasterizer(*chromePath, 90*time.Second))
	}

	for _, tpl := range document.Templates {
		doc := document.Default()
		doc.Template = tpl
		for _, kind := range []preview.Kind{preview.KindResume, preview.KindCoverLetter} {
			if kind == preview.KindCoverLetter && tpl != document.TemplateModern {
				continue
			}
			name := string(tpl) + "_" + string(kind)
			html, err := preview.Compose(preview.Build(reg, doc, labels, kind, now), preview.Neutral(), preview.Watermark{}, labels.Lang).HTML()
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: render failed: %v\n", name, err)
				os.Exit(1)
			}
			htmlPath := filepath.Join(*outDir, name+".html")
			if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "%s: write failed: %v\n", name, err)
				os.Exit(1)
			}
			fmt.Printf("OK: wrote %s\n", htmlPath)

			if raster == nil {
				continue
			}
			pages, err := writePDF(raster, html, filepath.Join(*outDir, name+".pdf"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: pdf failed: %v\n", name, err)
				os.Exit(1)
			}
			fmt.Printf("OK: wrote %s (%d pages)\n", name+".pdf", pages)
		}
	}
}

func writePDF(raster export.Rasterizer, html, path string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	img, err := raster.Rasterize(ctx, html, export.DefaultRasterOptions())
	if err != nil {
		return 0, err
	}
	b := img.Bounds()
	plan := export.Paginate(b.Dx(), b.Dy())
	data, _, err := export.Assembler{}.Assemble(img, plan, "#ffffff")
	if err != nil {
		return 0, err
	}
	if err := export.Verify(data, plan.Pages()); err != nil {
		return 0, err
	}
	return plan.Pages(), os.WriteFile(path, data, 0o644)
}
