package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-pricer/internal/engine"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// WriteJSON writes the full analysis result as indented JSON.
func WriteJSON(res *engine.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "profit_curves.json"), b, 0644)
}

// WriteCSV writes both profit curves as option_type, entry_price, profit
// rows, calls first, ascending by entry price within each type.
func WriteCSV(res *engine.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "profit_curves.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"option_type", "entry_price", "profit"}
	if err := w.Write(headers); err != nil {
		return err
	}

	writeCurve := func(typ string, curve []pricing.ProfitPoint) {
		for _, pt := range curve {
			row := []string{typ, fmt.Sprintf("%.4f", pt.EntryPrice), fmt.Sprintf("%.4f", pt.Profit)}
			_ = w.Write(row)
		}
	}
	writeCurve(string(pricing.Call), res.CallCurve)
	writeCurve(string(pricing.Put), res.PutCurve)

	return nil
}
