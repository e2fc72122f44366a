package gscparse

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

// ErrNoQueryData reports an upload with no usable query rows at all. It
// is a user-input problem, not an analysis error.
var ErrNoQueryData = errors.New("no query rows found in upload")

// File is one uploaded CSV to parse.
type File struct {
	Name   string
	Reader io.Reader
}

func emptyData(sourceFile string) *gsc.ParsedData {
	return &gsc.ParsedData{
		Queries:   []gsc.QueryRow{},
		Pages:     []gsc.Row{},
		Countries: []gsc.Row{},
		Devices:   []gsc.Row{},
		Dates:     []gsc.Row{},
		Metadata:  gsc.Metadata{SourceFile: sourceFile, FilesFound: []string{}},
	}
}

func parseCSV(r io.Reader) ([]gsc.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows []gsc.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		cells := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				cells[key] = record[i]
			}
		}
		rows = append(rows, normalizeRow(cells))
	}
	return rows, nil
}

// categorize routes a file's rows into the right dimension slice, first by
// filename and then by which columns the rows actually carry.
func categorize(data *gsc.ParsedData, filename string, rows []gsc.Row) {
	lower := strings.ToLower(filename)

	appendQueries := func() {
		for _, row := range rows {
			if row.Query != "" {
				data.Queries = append(data.Queries, gsc.QueryRowFrom(row))
			}
		}
	}
	appendPages := func() {
		for _, row := range rows {
			if row.Page != "" {
				data.Pages = append(data.Pages, row)
			}
		}
	}

	switch {
	case strings.Contains(lower, "quer"):
		appendQueries()
	case strings.Contains(lower, "page"), strings.Contains(lower, "url"):
		appendPages()
	case strings.Contains(lower, "countr"):
		data.Countries = append(data.Countries, rows...)
	case strings.Contains(lower, "device"):
		data.Devices = append(data.Devices, rows...)
	case strings.Contains(lower, "date"), strings.Contains(lower, "chart"):
		data.Dates = append(data.Dates, rows...)
	default:
		if len(rows) == 0 {
			return
		}
		first := rows[0]
		switch {
		case first.Query != "":
			appendQueries()
		case first.Page != "":
			appendPages()
		case first.Country != "":
			data.Countries = append(data.Countries, rows...)
		case first.Device != "":
			data.Devices = append(data.Devices, rows...)
		case first.Date != "":
			data.Dates = append(data.Dates, rows...)
		}
	}
}

// CalculateSummary computes the aggregate summary over the parsed query
// set. Ratios default to zero when their denominator is zero.
func CalculateSummary(data *gsc.ParsedData) gsc.Summary {
	q := data.Queries

	var totalClicks, totalImpressions int
	var positionSum float64
	var top3, pos4To10, pos11To20 int
	for _, r := range q {
		totalClicks += r.Clicks
		totalImpressions += r.Impressions
		positionSum += r.Position
		switch {
		case r.Position <= 3:
			top3++
		case r.Position <= 10:
			pos4To10++
		case r.Position <= 20:
			pos11To20++
		}
	}

	s := gsc.Summary{
		TotalQueries:          len(q),
		TotalPages:            len(data.Pages),
		TotalClicks:           totalClicks,
		TotalImpressions:      totalImpressions,
		QueriesInTop3:         top3,
		QueriesPosition4To10:  pos4To10,
		QueriesPosition11To20: pos11To20,
	}
	if totalImpressions > 0 {
		s.AvgCTR = float64(totalClicks) / float64(totalImpressions)
	}
	if len(q) > 0 {
		s.AvgPosition = positionSum / float64(len(q))
	}
	return s
}

// ParseFiles parses loose CSV uploads. Non-CSV filenames are skipped.
// Returns ErrNoQueryData when the upload yielded no query rows.
func ParseFiles(files []File) (*gsc.ParsedData, error) {
	data := emptyData("csv-upload")

	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			continue
		}
		rows, err := parseCSV(f.Reader)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name, err)
		}
		data.Metadata.FilesFound = append(data.Metadata.FilesFound, f.Name)
		categorize(data, f.Name, rows)
	}

	data.Summary = CalculateSummary(data)
	if len(data.Queries) == 0 {
		return nil, ErrNoQueryData
	}
	return data, nil
}

// ParseZip parses a GSC export archive, reading every CSV it contains.
// Returns ErrNoQueryData when the archive yielded no query rows.
func ParseZip(name string, r io.ReaderAt, size int64) (*gsc.ParsedData, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", name, err)
	}

	data := emptyData(name)
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name), ".csv") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in %s: %w", entry.Name, name, err)
		}
		rows, err := parseCSV(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s in %s: %w", entry.Name, name, err)
		}
		data.Metadata.FilesFound = append(data.Metadata.FilesFound, entry.Name)
		categorize(data, entry.Name, rows)
	}

	data.Summary = CalculateSummary(data)
	if len(data.Queries) == 0 {
		return nil, ErrNoQueryData
	}
	return data, nil
}
