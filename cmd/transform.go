// =============================================================================
// Quota Data Transformer - Transform Command
// =============================================================================
//
// This file defines the 'transform' command, which runs the parsing pipeline
// on one input and exports the result.
//
// COMMAND USAGE:
//   qdt transform [file|dir|-] [flags]
//
// INPUT:
//   - a file: .csv .tsv .txt .xlsx .xlsm .docx .html .htm
//   - a directory: every supported file directly inside it, processed
//     concurrently, one export per file written to --out
//   - "-" or nothing: text read from stdin
//
// FLAGS:
//   --sheet           : Worksheet of a multi-sheet workbook
//   --format          : tsv, csv, html, xlsx, xml or json
//   --view            : unified, category or id
//   --locale          : en-US or pt-BR
//   --legacy-headers  : Treat the first row as the header
//   --no-fallback     : Do not retry header detection with the legacy strategy
//   --out             : Write files to this directory instead of stdout
//
// =============================================================================

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/quota-data-transformer/internal/converter"
	"github.com/ginjaninja78/quota-data-transformer/internal/csvparser"
	"github.com/ginjaninja78/quota-data-transformer/internal/export"
	"github.com/ginjaninja78/quota-data-transformer/internal/labels"
	"github.com/ginjaninja78/quota-data-transformer/pkg/utils"
)

const stdinArg = "-"

// transformFlags holds the local flags of the transform command.
type transformFlags struct {
	sheet      string
	format     string
	view       string
	locale     string
	legacy     bool
	noFallback bool
	out        string
}

// exportPlan is the resolved form of transformFlags.
type exportPlan struct {
	pipeline converter.Options
	format   export.Format
	view     export.View
	locale   labels.Locale
	outDir   string
	sheet    string
}

// fileResult is the outcome of one file in directory mode.
type fileResult struct {
	input   string
	outputs []string
	err     error
}

// =============================================================================
// TRANSFORM COMMAND DEFINITION
// =============================================================================

func newTransformCommand(a *app) *cobra.Command {
	var flags transformFlags

	cmd := &cobra.Command{
		Use:   "transform [file|dir|-]",
		Short: "Normalize a quota request export",
		Long: `The transform command reads a tabular export of quota requests, locates
the header row, normalizes each row into the canonical fields (Subscription ID,
Request Type, VM Type, Region, Zone, Cores, Status) and exports the result.

Rows without any useful content are dropped. Records are grouped by request
type; --view category exports one table per group.

Given a directory, every supported file in it is processed concurrently and
each export is written to --out (or the configured output directory). Errors
in one file do not stop the others.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := stdinArg
			if len(args) == 1 {
				src = args[0]
			}
			return a.runTransform(cmd, src, &flags)
		},
	}

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "Worksheet to read from a multi-sheet workbook")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: tsv, csv, html, xlsx, xml, json (default from config)")
	cmd.Flags().StringVar(&flags.view, "view", "unified", "Table layout: unified, category, id")
	cmd.Flags().StringVar(&flags.locale, "locale", "", "Display language: en-US, pt-BR (default from config)")
	cmd.Flags().BoolVar(&flags.legacy, "legacy-headers", false, "Treat the first row as the header row")
	cmd.Flags().BoolVar(&flags.noFallback, "no-fallback", false, "Do not retry header detection with the legacy strategy")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Directory to write export files to")

	return cmd
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func (a *app) runTransform(cmd *cobra.Command, src string, flags *transformFlags) error {
	plan, err := a.plan(flags)
	if err != nil {
		return err
	}

	if src != stdinArg {
		info, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		if info.IsDir() {
			if plan.outDir == "" {
				plan.outDir = a.cfg.OutputDir
			}
			return a.transformDir(cmd, src, plan)
		}
	}

	text, err := readInput(cmd.InOrStdin(), src, plan.sheet)
	if err != nil {
		return err
	}
	tables, err := a.transform(src, text, plan)
	if err != nil {
		return err
	}

	if plan.outDir == "" {
		return export.Write(cmd.OutOrStdout(), plan.format, tables, plan.locale)
	}
	paths, err := a.writeFiles(src, tables, plan)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// plan resolves the flags against the configuration.
func (a *app) plan(flags *transformFlags) (exportPlan, error) {
	plan := exportPlan{
		pipeline: a.cfg.PipelineOptions(a.logger),
		format:   a.cfg.ExportFormat(),
		locale:   a.cfg.DisplayLocale(),
		outDir:   flags.out,
		sheet:    flags.sheet,
	}

	if flags.format != "" {
		f, err := export.ParseFormat(flags.format)
		if err != nil {
			return exportPlan{}, err
		}
		plan.format = f
	}
	if flags.locale != "" {
		l, err := labels.ParseLocale(flags.locale)
		if err != nil {
			return exportPlan{}, err
		}
		plan.locale = l
	}
	view, err := export.ParseView(flags.view)
	if err != nil {
		return exportPlan{}, err
	}
	plan.view = view

	if flags.legacy {
		plan.pipeline.HeaderStrategy = csvparser.StrategyLegacy
	}
	if flags.noFallback {
		plan.pipeline.DisableFallback = true
	}
	return plan, nil
}

// transform runs the pipeline on text and arranges the tables.
func (a *app) transform(src, text string, plan exportPlan) ([]export.Table, error) {
	start := time.Now()
	res, err := converter.New(plan.pipeline).Transform(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(src), err)
	}

	a.logger.Info("input transformed",
		zap.String("input", displayName(src)),
		zap.String("mode", string(res.Mode)),
		zap.Int("records", len(res.Records)),
		zap.Int("dropped", res.Stats.Dropped),
		zap.Strings("categories", res.Categories),
		zap.Duration("elapsed", time.Since(start)),
	)
	return export.BuildTables(res, plan.view), nil
}

// =============================================================================
// DIRECTORY MODE
// =============================================================================

// transformDir processes every supported file in dir concurrently.
func (a *app) transformDir(cmd *cobra.Command, dir string, plan exportPlan) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	inputFiles, err := utils.DiscoverInputFiles(dir, converter.SupportedExtensions())
	if err != nil {
		return err
	}
	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No supported files found in the input directory.")
		return nil
	}

	var wg sync.WaitGroup
	results := make(chan fileResult, len(inputFiles))

	for _, file := range inputFiles {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			outputs, err := a.transformFile(path, plan)
			results <- fileResult{input: path, outputs: outputs, err: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	byInput := make(map[string]fileResult, len(inputFiles))
	for result := range results {
		byInput[result.input] = result
	}

	var failed int
	for _, file := range inputFiles {
		result := byInput[file]
		if result.err != nil {
			failed++
			fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(file), result.err)
			continue
		}
		fmt.Fprintf(out, "  ✓ %s -> %s\n", filepath.Base(file), strings.Join(result.outputs, ", "))
	}

	fmt.Fprintf(out, "\nTotal files:  %d\n", len(inputFiles))
	fmt.Fprintf(out, "Successful:   %d\n", len(inputFiles)-failed)
	fmt.Fprintf(out, "Errors:       %d\n", failed)
	fmt.Fprintf(out, "Time elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(inputFiles))
	}
	return nil
}

func (a *app) transformFile(path string, plan exportPlan) ([]string, error) {
	text, err := converter.LoadSource(path, plan.sheet)
	if err != nil {
		return nil, err
	}
	tables, err := a.transform(path, text, plan)
	if err != nil {
		return nil, err
	}
	return a.writeFiles(path, tables, plan)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// readInput returns the pipeline text of src, reading stdin for "-".
func readInput(stdin io.Reader, src, sheet string) (string, error) {
	if src != stdinArg {
		return converter.LoadSource(src, sheet)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return converter.DecodeText(data)
}

// writeFiles writes the tables below plan.outDir and returns the paths.
//
// Text formats get one file per table. XLSX, XML and JSON hold every table
// in a single file.
func (a *app) writeFiles(src string, tables []export.Table, plan exportPlan) ([]string, error) {
	if len(tables) == 0 {
		return nil, errors.New("nothing to export")
	}
	fm := utils.NewFileManager(plan.outDir, a.cfg.OutputFileFormat)

	groups := [][]export.Table{tables}
	switch plan.format {
	case export.FormatTSV, export.FormatCSV, export.FormatHTML:
		groups = make([][]export.Table, 0, len(tables))
		for _, t := range tables {
			groups = append(groups, []export.Table{t})
		}
	}

	paths := make([]string, 0, len(groups))
	for _, group := range groups {
		title := export.DefaultTitle
		if len(group) == 1 {
			title = group[0].Title
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, plan.format, group, plan.locale); err != nil {
			return paths, err
		}

		params := map[string]string{
			"category": title,
			"locale":   string(plan.locale),
			"source":   strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		}
		path, err := fm.Write(params, plan.format.Extension(), buf.Bytes())
		if err != nil {
			return paths, err
		}
		a.logger.Debug("export written", zap.String("path", path), zap.String("title", title))
		paths = append(paths, path)
	}
	return paths, nil
}

func displayName(src string) string {
	if src == stdinArg {
		return "stdin"
	}
	return filepath.Base(src)
}
