package markets_table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

// NotAvailable is shown for absent values
const NotAvailable = "N/A"

// CSVFilename is the suggested download name
const CSVFilename = "crypto_data.csv"

// smallDigits is the number of significant digits shown for amounts below 1
const smallDigits = 4

// FormatPercent renders a change with a sign, e.g. "+5.00%"
func FormatPercent(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return NotAvailable
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

// FormatMoney renders v with thousands separators and the currency label,
// e.g. "64,000.12 USD"
func FormatMoney(v *float64, currency cg.Currency) string {
	if v == nil || math.IsNaN(*v) {
		return NotAvailable
	}
	s := formatAmount(*v)
	if currency == "" {
		return s
	}
	return s + " " + currency.Label()
}

// formatAmount keeps two decimals from 1 upwards and smallDigits
// significant digits below it, so 0.00001234 stays "0.00001234"
func formatAmount(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || abs >= 1 {
		return humanize.CommafWithDigits(v, 2)
	}
	decimals := smallDigits - 1 - int(math.Floor(math.Log10(abs)))
	return humanize.FtoaWithDigits(v, decimals)
}

// Row renders r as display cells in Columns order
func Row(r MarketRecord) []string {
	return []string{
		r.Name,
		strings.ToUpper(r.Symbol),
		FormatMoney(r.Price, ""),
		FormatMoney(r.MarketCap, ""),
		FormatMoney(r.Volume24h, ""),
		FormatPercent(r.PctChange1h),
		FormatPercent(r.PctChange24h),
		FormatPercent(r.PctChange7d),
	}
}

// WriteCSV writes a header row and one row per record. Numbers are written
// unformatted and absent values are left empty.
func WriteCSV(w io.Writer, records []MarketRecord, currency cg.Currency) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns(currency)); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Name,
			strings.ToUpper(r.Symbol),
			rawValue(r.Price),
			rawValue(r.MarketCap),
			rawValue(r.Volume24h),
			rawValue(r.PctChange1h),
			rawValue(r.PctChange24h),
			rawValue(r.PctChange7d),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func rawValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
