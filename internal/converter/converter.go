// =============================================================================
// Quota Data Transformer - Converter Module
// =============================================================================
//
// This module is the entry point of the parsing pipeline. It runs every stage
// over one raw input string and returns the canonical records and their
// request type groups.
//
// CONVERSION PIPELINE:
//   1. Strip boilerplate and split the input into non-blank lines
//   2. Detect the separator and tokenize every line
//   3. Locate the header row (robust strategy, legacy fallback)
//   4. Resolve columns and decide the input mode
//   5. Normalize every data row into a canonical record
//   6. Drop degenerate rows (raw mode only)
//   7. Group records by request type
//
// CONCURRENCY:
//   A Converter holds only its options. Transform keeps no state between
//   calls and may be called concurrently.
//
// =============================================================================

package converter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ginjaninja78/quota-data-transformer/internal/csvparser"
	"github.com/ginjaninja78/quota-data-transformer/internal/normalizer"
	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures one pipeline run. The zero value uses the robust header
// strategy with the legacy fallback enabled, no banner stripping, and no
// logging.
type Options struct {
	// HeaderStrategy selects the header detection strategy.
	HeaderStrategy csvparser.HeaderStrategy

	// DisableFallback turns off the legacy retry after a robust failure.
	DisableFallback bool

	// BannerSignatures identify a query banner first line to drop.
	BannerSignatures []string

	// StripTitlePrefix removes a leading "Title:" from every line.
	StripTitlePrefix bool

	// Logger receives debug diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the options used by the CLI and HTTP layers when no
// configuration is given.
func DefaultOptions() Options {
	return Options{
		HeaderStrategy:   csvparser.StrategyRobust,
		BannerSignatures: csvparser.DefaultBannerSignatures,
		StripTitlePrefix: true,
	}
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter runs the parsing pipeline with fixed options.
type Converter struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Converter.
func New(opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HeaderStrategy == "" {
		opts.HeaderStrategy = csvparser.StrategyRobust
	}
	return &Converter{opts: opts, logger: logger}
}

// Transform runs the pipeline once with opts.
func Transform(raw string, opts Options) (*types.Result, error) {
	return New(opts).Transform(raw)
}

// Transform parses raw into canonical records.
//
// RETURNS:
//   - The result on success. It is never partially filled.
//   - One of the typed errors of the types package on failure. Unexpected
//     failures, panics included, are wrapped in *types.UnknownParseError.
func (c *Converter) Transform(raw string) (result *types.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &types.UnknownParseError{Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	doc, err := csvparser.Preprocess(raw, csvparser.PreprocessOptions{
		BannerSignatures: c.opts.BannerSignatures,
		StripTitlePrefix: c.opts.StripTitlePrefix,
	})
	if err != nil {
		return nil, err
	}

	table := csvparser.Tokenize(doc)
	c.logger.Debug("separator detected",
		zap.Stringer("separator", table.Separator),
		zap.Int("lines", len(doc.Lines)),
		zap.Bool("banner_stripped", doc.BannerStripped))

	header, err := c.locateHeader(table.Rows)
	if err != nil {
		return nil, err
	}

	norm, err := normalizer.New(csvparser.NewColumnIndex(header.Cells))
	if err != nil {
		return nil, err
	}

	dataRows := table.Rows[header.RowIndex+1:]
	records := norm.Normalize(dataRows)

	dropped := 0
	if norm.Mode() == types.ModeRaw {
		records, dropped = normalizer.FilterDegenerate(records)
	}
	if len(records) == 0 {
		return nil, &types.EmptyResultError{}
	}

	groups, categories := normalizer.Group(records)
	c.logger.Debug("records normalized",
		zap.String("mode", string(norm.Mode())),
		zap.Int("header_row", header.RowIndex),
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped),
		zap.Int("groups", len(groups)))

	return &types.Result{
		Records:    records,
		Groups:     groups,
		Categories: categories,
		Mode:       norm.Mode(),
		Stats: types.ParseStats{
			Lines:          len(doc.Lines),
			Separator:      table.Separator.String(),
			HeaderRowIndex: header.RowIndex,
			HeaderFallback: header.Fallback,
			BannerStripped: doc.BannerStripped,
			DataRows:       len(dataRows),
			Dropped:        dropped,
		},
	}, nil
}

func (c *Converter) locateHeader(rows [][]string) (csvparser.HeaderInfo, error) {
	fallback := !c.opts.DisableFallback
	info, err := csvparser.LocateHeader(rows, c.opts.HeaderStrategy, fallback, func(err error) {
		c.logger.Warn("robust header detection failed, retrying with legacy strategy", zap.Error(err))
	})
	if err != nil {
		return info, err
	}
	if info.Fallback {
		c.logger.Debug("legacy header row used", zap.Int("header_row", info.RowIndex))
	}
	return info, nil
}
