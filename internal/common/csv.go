// Package common holds the text exports shared by the commands: the CSV
// report and the share summary of a transaction.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"

	"fjacquet/khoroch-khata/internal/currencyutils"
	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// utf8BOM lets spreadsheet tools detect the encoding of Bengali text.
const utf8BOM = "\ufeff"

// csvRow is one exported transaction.
type csvRow struct {
	Date          string `csv:"date"`
	Note          string `csv:"note"`
	Category      string `csv:"category"`
	Type          string `csv:"type"`
	PaymentMethod string `csv:"paymentMethod"`
	Amount        string `csv:"amount"`
}

// CSVHeaders returns the column titles of the report.
func CSVHeaders(currency models.CurrencyConfig) []string {
	return []string{"তারিখ", "বিবরণ", "ক্যাটাগরি", "টাইপ", "পেমেন্ট", fmt.Sprintf("পরিমাণ (%s)", currency.Symbol)}
}

// BengaliDate renders d as day/month/year in Bengali digits.
func BengaliDate(d dateutils.Date) string {
	if d.IsZero() {
		return ""
	}
	return currencyutils.ToBengaliDigits(fmt.Sprintf("%d/%d/%d", d.Day(), int(d.Month()), d.Year()))
}

// ReportFileName returns "Report-<YYYY-MM-DD>.csv".
func ReportFileName(now time.Time) string {
	return fmt.Sprintf("Report-%s.csv", dateutils.FromTime(now))
}

// WriteTransactionsCSV writes txs in order, preceded by a byte order mark
// and a header row.
func WriteTransactionsCSV(w io.Writer, txs []models.Transaction, currency models.CurrencyConfig, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ','
	}
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := csvWriter.Write(CSVHeaders(currency)); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	rows := make([]csvRow, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, csvRow{
			Date:          BengaliDate(t.Date),
			Note:          t.Note,
			Category:      t.Category,
			Type:          string(t.Type),
			PaymentMethod: string(t.PaymentMethod),
			Amount:        t.Amount.String(),
		})
	}
	if err := gocsv.MarshalCSVWithoutHeaders(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// ExportTransactionsCSV writes the report to path, creating its directory.
func ExportTransactionsCSV(fs afero.Fs, path string, txs []models.Transaction, currency models.CurrencyConfig, delimiter rune, logger logging.Logger) error {
	logger = logging.OrDefault(logger)
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, models.PermissionReportFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteTransactionsCSV(file, txs, currency, delimiter); err != nil {
		return err
	}
	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	).Info("Successfully wrote transactions to CSV file")
	return nil
}
