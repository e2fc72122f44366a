package gscparse

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilesEnglishQueries(t *testing.T) {
	csv := "Top queries,Clicks,Impressions,CTR,Position\n" +
		"crm software,120,3400,3.53%,5.2\n" +
		"acme login,980,2100,46.67%,1.1\n"

	data, err := ParseFiles([]File{{Name: "Queries.csv", Reader: strings.NewReader(csv)}})

	require.NoError(t, err)
	require.Len(t, data.Queries, 2)

	q := data.Queries[0]
	assert.Equal(t, "crm software", q.Query)
	assert.Equal(t, 120, q.Clicks)
	assert.Equal(t, 3400, q.Impressions)
	assert.InDelta(t, 0.0353, q.CTR, 1e-9)
	assert.InDelta(t, 5.2, q.Position, 1e-9)
}

func TestParseFilesPolishHeadersAndFormats(t *testing.T) {
	csv := "Najczęstsze zapytania,Kliknięcia,Wyświetlenia,CTR,Pozycja\n" +
		"oprogramowanie crm,1 234,10 000,\"12,34%\",\"2,5\"\n"

	data, err := ParseFiles([]File{{Name: "Zapytania.csv", Reader: strings.NewReader(csv)}})

	require.NoError(t, err)
	require.Len(t, data.Queries, 1)

	q := data.Queries[0]
	assert.Equal(t, "oprogramowanie crm", q.Query)
	assert.Equal(t, 1234, q.Clicks)
	assert.Equal(t, 10000, q.Impressions)
	assert.InDelta(t, 0.1234, q.CTR, 1e-9)
	assert.InDelta(t, 2.5, q.Position, 1e-9)
}

func TestParseFilesBOMHeader(t *testing.T) {
	csv := "\uFEFFQuery,Clicks,Impressions,CTR,Position\n" +
		"test query,10,100,10%,3\n"

	data, err := ParseFiles([]File{{Name: "queries.csv", Reader: strings.NewReader(csv)}})

	require.NoError(t, err)
	require.Len(t, data.Queries, 1)
	assert.Equal(t, "test query", data.Queries[0].Query)
	assert.Equal(t, 10, data.Queries[0].Clicks)
}

func TestParseFilesBareCTRAboveOne(t *testing.T) {
	csv := "Query,Clicks,Impressions,CTR,Position\n" +
		"some query,10,100,4.5,3\n"

	data, err := ParseFiles([]File{{Name: "queries.csv", Reader: strings.NewReader(csv)}})

	require.NoError(t, err)
	require.Len(t, data.Queries, 1)
	assert.InDelta(t, 0.045, data.Queries[0].CTR, 1e-9)
}

func TestParseFilesCategorizeByColumns(t *testing.T) {
	// Filename gives no hint; the query column decides.
	csv := "Query,Clicks\nfallback query,5\n"

	data, err := ParseFiles([]File{{Name: "export.csv", Reader: strings.NewReader(csv)}})

	require.NoError(t, err)
	require.Len(t, data.Queries, 1)
	assert.Equal(t, "fallback query", data.Queries[0].Query)
}

func TestParseFilesPagesDimension(t *testing.T) {
	queries := "Query,Clicks\nsome query,5\n"
	pages := "Top pages,Clicks,Impressions\nhttps://example.com/a,10,200\n"

	data, err := ParseFiles([]File{
		{Name: "Queries.csv", Reader: strings.NewReader(queries)},
		{Name: "Pages.csv", Reader: strings.NewReader(pages)},
	})

	require.NoError(t, err)
	require.Len(t, data.Pages, 1)
	assert.Equal(t, "https://example.com/a", data.Pages[0].Page)
	assert.Equal(t, 1, data.Summary.TotalPages)
}

func TestParseFilesNoQueryData(t *testing.T) {
	pages := "Top pages,Clicks\nhttps://example.com/a,10\n"

	_, err := ParseFiles([]File{{Name: "Pages.csv", Reader: strings.NewReader(pages)}})

	assert.ErrorIs(t, err, ErrNoQueryData)
}

func TestParseFilesSkipsNonCSV(t *testing.T) {
	_, err := ParseFiles([]File{{Name: "readme.txt", Reader: strings.NewReader("not a csv")}})
	assert.ErrorIs(t, err, ErrNoQueryData)
}

func TestParseZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("Queries.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("Query,Clicks,Impressions,CTR,Position\nzipped query,7,70,10%,2\n"))
	require.NoError(t, err)

	w, err = zw.Create("Devices.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("Device,Clicks\nMOBILE,40\n"))
	require.NoError(t, err)

	require.NoError(t, zw.Close())

	data, err := ParseZip("export.zip", bytes.NewReader(buf.Bytes()), int64(buf.Len()))

	require.NoError(t, err)
	require.Len(t, data.Queries, 1)
	assert.Equal(t, "zipped query", data.Queries[0].Query)
	require.Len(t, data.Devices, 1)
	assert.Equal(t, "MOBILE", data.Devices[0].Device)
	assert.Equal(t, "export.zip", data.Metadata.SourceFile)
	assert.ElementsMatch(t, []string{"Queries.csv", "Devices.csv"}, data.Metadata.FilesFound)
}

func TestParseZipNoQueries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("Countries.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("Country,Clicks\npol,10\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ParseZip("export.zip", bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.ErrorIs(t, err, ErrNoQueryData)
}

func TestCalculateSummaryBuckets(t *testing.T) {
	csv := "Query,Clicks,Impressions,CTR,Position\n" +
		"first,30,100,30%,1\n" +
		"second,10,200,5%,3\n" +
		"middle,5,300,1.67%,7\n" +
		"deep,1,400,0.25%,15\n" +
		"beyond,0,500,0%,44\n"

	data, err := ParseFiles([]File{{Name: "queries.csv", Reader: strings.NewReader(csv)}})
	require.NoError(t, err)

	s := data.Summary
	assert.Equal(t, 5, s.TotalQueries)
	assert.Equal(t, 46, s.TotalClicks)
	assert.Equal(t, 1500, s.TotalImpressions)
	assert.Equal(t, 2, s.QueriesInTop3)
	assert.Equal(t, 1, s.QueriesPosition4To10)
	assert.Equal(t, 1, s.QueriesPosition11To20)
	assert.InDelta(t, 46.0/1500.0, s.AvgCTR, 1e-9)
	assert.InDelta(t, 14.0, s.AvgPosition, 1e-9)
}

func TestCanonicalKeyVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Top queries", "query"},
		{"CTR", "ctr"},
		{"Average Position", "position"},
		{"Kliknięcia", "clicks"},
		{"klikniecia", "clicks"},
		{"Suchanfragen", "query"},
		{"Requêtes", "query"},
		{"Páginas", "page"},
		{"URL", "page"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalKey(tt.raw), "raw %q", tt.raw)
	}
}

func TestParseCounts(t *testing.T) {
	assert.Equal(t, 1234, parseCount("1,234"))
	assert.Equal(t, 1234, parseCount("1 234"))
	assert.Equal(t, 1234, parseCount("1.234"))
	assert.Equal(t, 1234, parseCount("1 234"))
	assert.Equal(t, 0, parseCount("not a number"))
}

func TestParseCTRVariants(t *testing.T) {
	assert.InDelta(t, 0.045, parseCTR("4.5%"), 1e-9)
	assert.InDelta(t, 0.045, parseCTR("4,5%"), 1e-9)
	assert.InDelta(t, 0.045, parseCTR("0.045"), 1e-9)
	assert.InDelta(t, 0.045, parseCTR("4.5"), 1e-9)
	assert.Equal(t, 0.0, parseCTR("garbage"))
}
