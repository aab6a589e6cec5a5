package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tabscope/domain/core"
	"tabscope/domain/table"
)

func TestReadBytesCSV(t *testing.T) {
	data := []byte("\ufeffname, score ,active\nann,3.5,true\nbob,NA,false\n,  7 ,TRUE\ncid\n")

	tbl, err := ReadBytes("upload.csv", data, DefaultReaderConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "score", "active"}, tbl.ColumnNames())
	assert.Equal(t, 4, tbl.NumRows())

	score, err := tbl.Column("score")
	require.NoError(t, err)
	assert.Equal(t, "3.5", score.Values[0].String())
	assert.True(t, score.Values[1].IsMissing(), "NA token is absent")
	assert.Equal(t, "7", score.Values[2].String(), "cells are trimmed")
	assert.True(t, score.Values[3].IsMissing(), "short rows are padded")

	name, _ := tbl.Column("name")
	assert.True(t, name.Values[2].IsMissing())
}

func TestReadBytesCustomNA(t *testing.T) {
	data := []byte("a\n-\nNA\n")

	tbl, err := ReadBytes("x.csv", data, ReaderConfig{NA: table.NewNASet([]string{"-"})})
	require.NoError(t, err)

	col, _ := tbl.Column("a")
	assert.True(t, col.Values[0].IsMissing())
	assert.Equal(t, "NA", col.Values[1].String())
}

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{"a", "a", "a"}, []string{"a", "a.1", "a.2"}},
		{[]string{"a", "a", "a.1"}, []string{"a", "a.2", "a.1"}},
		{[]string{"", " x ", ""}, []string{"Unnamed: 0", "x", "Unnamed: 2"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHeaders(tt.in), "%v", tt.in)
	}
}

func TestReadBytesXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName(f.GetSheetName(0), sheet)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"region", "units", "price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"North", 10, 2.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"South", 4, "N/A"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"East", 12}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := ReadBytes("book.xlsx", buf.Bytes(), DefaultReaderConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "units", "price"}, tbl.ColumnNames())
	require.Equal(t, 3, tbl.NumRows())

	price, _ := tbl.Column("price")
	assert.Equal(t, "2.5", price.Values[0].String())
	assert.True(t, price.Values[1].IsMissing())
	assert.True(t, price.Values[2].IsMissing())

	_, err = ReadBytes("book.xlsx", buf.Bytes(), ReaderConfig{Sheet: "Missing"})
	assert.Error(t, err)

	named, err := ReadBytes("book.xlsx", buf.Bytes(), ReaderConfig{Sheet: sheet})
	require.NoError(t, err)
	assert.Equal(t, 3, named.NumRows())
}

func TestDataReaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n3,4\n"), 0o644))

	r, err := NewDataReader(path, DefaultReaderConfig())
	require.NoError(t, err)
	assert.Equal(t, "sales.csv", r.Name())

	tbl, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())

	missing, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv"), DefaultReaderConfig())
	require.NoError(t, err)
	_, err = missing.ReadTable()
	assert.ErrorContains(t, err, "not found")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := ReadBytes("notes.txt", []byte("a"), DefaultReaderConfig())
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)

	_, err = NewDataReader("data.parquet", DefaultReaderConfig())
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)

	_, err = ReadBytes("empty.csv", nil, DefaultReaderConfig())
	assert.Error(t, err)
}
