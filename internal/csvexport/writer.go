package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the sheet CSV header row (13 columns).
var columns = []string{
	"Date",
	"Invoice No",
	"Shipper",
	"Buyer",
	"Depot",
	"Doc",
	"Ctn",
	"Ton",
	"Truck Unload",
	"Con",
	"Others",
	"Total Taka",
	"Employee",
}

// Writer wraps csv.Writer for exporting sheet entries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries converts a batch of sheet entries to CSV rows and writes them.
func (w *Writer) WriteEntries(entries []domain.IndianEntry) error {
	for i := range entries {
		if err := w.csv.Write(entryToRow(&entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func entryToRow(e *domain.IndianEntry) []string {
	row := make([]string, len(columns))
	row[0] = e.Date
	row[1] = e.InvoiceNo
	row[2] = e.ShipperName
	row[3] = e.BuyerName
	row[4] = e.DepotName
	row[5] = formatUnits(e.Doc)
	row[6] = formatUnits(e.Ctn)
	row[7] = formatUnits(e.Ton)
	row[8] = formatUnits(e.TruckUnload)
	row[9] = formatMoney(e.Con)
	row[10] = formatMoney(e.Others)
	row[11] = formatMoney(e.TotalTaka)
	row[12] = e.EmployeeName
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a sheet name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_sheet_name}_{YYYY-MM-DD}.csv
func BuildFilename(sheetName string) string {
	sanitized := SanitizeFilename(sheetName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
