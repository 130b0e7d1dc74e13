package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/intercepted16/pagegrid"
)

func main() {
	cmd := &cli.Command{
		Name:  "pagegrid",
		Usage: "Detect tables and column layout in PDF files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input PDF file path",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output markdown file path (default: stdout)",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Process a single page (0-indexed, default: all pages)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "columns",
				Usage: "Print detected column bands alongside tables",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Log per-page processing metrics",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	outputPath := cmd.String("output")
	page := cmd.Int("page")

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	doc, err := instance.OpenDocument(&requests.OpenDocument{
		FilePath: &inputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to open PDF document: %w", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	cfg := pagegrid.DefaultConfig()
	cfg.DetectColumns = cmd.Bool("columns")
	cfg.EnableMetricsLogging = cmd.Bool("metrics")

	engine := pagegrid.NewEngine(pagegrid.NewPdfiumSource(instance, doc.Document), cfg)

	var results []*pagegrid.PageResult
	if page >= 0 {
		res, err := engine.ProcessPage(ctx, page)
		if err != nil {
			return fmt.Errorf("failed to process page %d: %w", page, err)
		}
		results = append(results, res)
	} else {
		results, err = engine.ProcessDocument(ctx)
		if err != nil {
			return fmt.Errorf("failed to process document: %w", err)
		}
	}

	var sb strings.Builder
	for _, res := range results {
		if cmd.Bool("columns") {
			for _, col := range res.Columns {
				fmt.Fprintf(os.Stderr, "page %d column %d: x=[%.1f, %.1f] blocks=%d\n",
					res.PageIndex, col.Index, col.X0, col.X1, len(col.Blocks))
			}
		}
		for _, table := range res.Tables {
			sb.WriteString(table.ToMarkdown())
			sb.WriteString("\n")
		}
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Markdown written to %s\n", outputPath)
	} else {
		fmt.Print(sb.String())
	}
	return nil
}
