package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
)

func TestWriteWorkbook(t *testing.T) {
	entries := []domain.IndianEntry{
		{Date: "2026-08-28", InvoiceNo: "INV-001", ShipperName: "Alpha", TotalTaka: 5583},
		{Date: "2026-08-27", InvoiceNo: "INV-002", ShipperName: "Beta", TotalTaka: 1000},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, entries))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	invoice, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "INV-001", invoice)

	taka, err := f.GetCellValue(sheetName, "L3")
	require.NoError(t, err)
	assert.Equal(t, "1000", taka)

	totalLabel, err := f.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", totalLabel)

	total, err := f.GetCellValue(sheetName, "L4")
	require.NoError(t, err)
	assert.Equal(t, "6583", total)
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	label, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)
}

func TestBuildFilename(t *testing.T) {
	assert.Regexp(t, `^master_sheet_\d{4}-\d{2}-\d{2}\.xlsx$`, BuildFilename())
}
