package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"SniperScan/internal/model"
)

// csvHeader fixes the export column order; reporting layers depend on it.
var csvHeader = []string{
	"ticker", "composite_score", "price", "technical_score", "fundamental_score",
	"signals", "stop_loss", "sector",
}

// WriteCSV exports the ranked results as a flat CSV record stream.
func WriteCSV(w io.Writer, rep *model.ScanReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rep.Results {
		row := []string{
			r.Ticker,
			fmt.Sprintf("%.1f", r.CompositeScore),
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%.0f", r.TechnicalScore),
			fmt.Sprintf("%.0f", r.FundamentalScore),
			strings.Join(r.TechnicalSignals, "|"),
			fmt.Sprintf("%.2f", r.StopLoss),
			r.Sector,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", r.Ticker, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
