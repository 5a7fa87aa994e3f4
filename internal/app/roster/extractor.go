// Package roster turns the rows of a class roster spreadsheet into student
// records with derived login credentials.
package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/studentsync/internal/app/models"
	"github.com/yigit/studentsync/internal/pkg/credentials"
	"github.com/yigit/studentsync/internal/pkg/spreadsheet"
)

// Positional column layout of the roster. Columns are never matched by
// header name.
const (
	colNo = iota
	colName
	colClass
	colNISN
)

// Options configures row filtering and credential derivation.
type Options struct {
	Sheet            string
	NoHeaderMarker   string
	NameHeaderMarker string
	EmailDomain      string
}

// Result is the outcome of one extraction.
type Result struct {
	Records []models.StudentRecord
	// Skipped counts rows after the first that were dropped as headers,
	// blanks or incomplete records.
	Skipped int
	// DuplicateNISNs lists NISNs seen on more than one accepted row, in first
	// occurrence order. Duplicates are kept in Records.
	DuplicateNISNs []string
}

// Extractor reads a roster source into a Result.
type Extractor struct {
	opts   Options
	logger zerolog.Logger
}

// NewExtractor creates an Extractor, filling unset markers with the roster
// defaults.
func NewExtractor(opts Options, lgr zerolog.Logger) *Extractor {
	if opts.NoHeaderMarker == "" {
		opts.NoHeaderMarker = "NO"
	}
	if opts.NameHeaderMarker == "" {
		opts.NameHeaderMarker = "NAMA"
	}
	if opts.EmailDomain == "" {
		opts.EmailDomain = credentials.DefaultEmailDomain
	}
	return &Extractor{opts: opts, logger: lgr}
}

// Extract reads the source at path. A missing file yields an error wrapping
// apperrors.ErrSourceNotFound.
func (e *Extractor) Extract(path string) (*Result, error) {
	rows, err := spreadsheet.ReadRows(path, spreadsheet.Options{Sheet: e.opts.Sheet})
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	e.logger.Debug().Str("path", path).Int("rows", len(rows)).Msg("Roster source read")
	return e.FromRows(rows), nil
}

// FromRows converts raw rows, header row first, into records.
func (e *Extractor) FromRows(rows [][]string) *Result {
	result := &Result{Records: make([]models.StudentRecord, 0, len(rows))}
	if len(rows) < 2 {
		return result
	}

	seen := make(map[string]int)
	for i, row := range rows[1:] {
		line := i + 2

		record, reason := e.parseRow(row)
		if reason != "" {
			result.Skipped++
			e.logger.Debug().Int("row", line).Str("reason", reason).Msg("Row skipped")
			continue
		}

		seen[record.NISN]++
		if seen[record.NISN] == 2 {
			result.DuplicateNISNs = append(result.DuplicateNISNs, record.NISN)
		}
		result.Records = append(result.Records, record)
	}

	return result
}

// parseRow returns the record for a data row, or a non-empty skip reason.
func (e *Extractor) parseRow(row []string) (models.StudentRecord, string) {
	no := cell(row, colNo)
	name := cell(row, colName)

	if no == "" || no == e.opts.NoHeaderMarker || name == e.opts.NameHeaderMarker {
		return models.StudentRecord{}, "header or blank row"
	}

	nisn := cell(row, colNISN)
	if name == "" || nisn == "" {
		return models.StudentRecord{}, "missing name or NISN"
	}

	seq, ok := parseSequence(no)
	if !ok {
		e.logger.Warn().Str("no", no).Str("nisn", nisn).Msg("Row number is not a positive integer, keeping student with no 0")
	}

	return models.StudentRecord{
		No:       seq,
		Name:     name,
		Class:    cell(row, colClass),
		NISN:     nisn,
		Password: credentials.Password(name, nisn),
		Email:    credentials.Email(name, nisn, e.opts.EmailDomain),
	}, ""
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSequence accepts "7" as well as spreadsheet floats like "7.0". Anything
// else yields 0, false.
func parseSequence(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
