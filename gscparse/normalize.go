// Package gscparse adapts raw GSC performance exports (ZIP archives or
// loose CSV files, in any of the export UI languages) into the canonical
// row format the analysis engine consumes.
package gscparse

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

// keyMapping folds the column-name synonyms GSC uses across export
// locales onto canonical field names. Keys are matched after lowercasing,
// underscore-joining and stripping the "top_" prefix; a second lookup
// runs with diacritics removed.
var keyMapping = map[string]string{
	// English
	"clicks":           "clicks",
	"impressions":      "impressions",
	"ctr":              "ctr",
	"position":         "position",
	"average_position": "position",
	"avg_position":     "position",
	"query":            "query",
	"queries":          "query",
	"page":             "page",
	"pages":            "page",
	"url":              "page",
	"country":          "country",
	"device":           "device",
	"date":             "date",

	// Polish
	"kliknięcia":               "clicks",
	"klikniecia":               "clicks",
	"wyświetlenia":             "impressions",
	"wyswietlenia":             "impressions",
	"pozycja":                  "position",
	"najczęstsze_zapytania":    "query",
	"najczestsze_zapytania":    "query",
	"zapytania":                "query",
	"zapytanie":                "query",
	"najpopularniejsze_strony": "page",
	"strona":                   "page",
	"strony":                   "page",
	"kraj":                     "country",
	"urządzenie":               "device",
	"urzadzenie":               "device",
	"data":                     "date",

	// German
	"klicks":       "clicks",
	"impressionen": "impressions",
	"suchanfragen": "query",
	"seiten":       "page",
	"land":         "country",
	"gerät":        "device",
	"gerat":        "device",
	"datum":        "date",

	// French
	"clics":    "clicks",
	"requêtes": "query",
	"requetes": "query",
	"pays":     "country",
	"appareil": "device",

	// Spanish
	"consultas":   "query",
	"páginas":     "page",
	"paginas":     "page",
	"país":        "country",
	"pais":        "country",
	"dispositivo": "device",
	"fecha":       "date",
}

var diacriticsFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func removeDiacritics(s string) string {
	out, _, err := transform.String(diacriticsFold, s)
	if err != nil {
		return s
	}
	return out
}

func canonicalKey(rawKey string) string {
	clean := strings.ToLower(strings.TrimSpace(rawKey))
	clean = strings.Join(strings.Fields(clean), "_")
	clean = strings.TrimPrefix(clean, "top_")
	if mapped, ok := keyMapping[clean]; ok {
		return mapped
	}
	folded := removeDiacritics(clean)
	if mapped, ok := keyMapping[folded]; ok {
		return mapped
	}
	return folded
}

// parseCount parses clicks/impressions cells, tolerating comma, dot,
// space and NBSP thousand separators ("1,234" and "1 234" both parse).
func parseCount(value string) int {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ',', '.', ' ':
			return -1
		}
		return r
	}, value)
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}

// parseCTR parses a CTR cell into a fraction. Percent-formatted cells
// ("4.5%") divide by 100, as do bare values above 1.
func parseCTR(value string) float64 {
	s := strings.ReplaceAll(value, ",", ".")
	if strings.Contains(s, "%") {
		s = strings.ReplaceAll(s, "%", "")
		s = strings.Join(strings.Fields(s), "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f / 100
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	if f > 1 {
		return f / 100
	}
	return f
}

// parsePosition parses a position cell, accepting a decimal comma.
func parsePosition(value string) float64 {
	s := strings.ReplaceAll(value, ",", ".")
	s = strings.Join(strings.Fields(s), "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// normalizeRow converts one raw CSV record (header name to cell value)
// into a canonical row. Missing numeric fields default to zero.
func normalizeRow(record map[string]string) gsc.Row {
	var row gsc.Row
	for rawKey, value := range record {
		switch canonicalKey(rawKey) {
		case "clicks":
			row.Clicks = parseCount(value)
		case "impressions":
			row.Impressions = parseCount(value)
		case "ctr":
			row.CTR = parseCTR(value)
		case "position":
			row.Position = parsePosition(value)
		case "query":
			row.Query = value
		case "page":
			row.Page = value
		case "country":
			row.Country = value
		case "device":
			row.Device = value
		case "date":
			row.Date = value
		}
	}
	return row
}
