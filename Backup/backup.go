package Backup

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"Imperyo/Models"
	"Imperyo/Store"
)

// Snapshot sheet names, one per collection. Kept identical to the files the
// workshop already archives.
const (
	SheetOrders   = "pedidos"
	SheetExpenses = "gastos"
	SheetTotals   = "totales"
	SheetLists    = "listas"
	SheetJobs     = "trabajos"
)

// WriteSnapshot dumps the whole working set into one spreadsheet under dir
// and returns the written path. Timestamps are written timezone-naive.
func WriteSnapshot(state *Models.AppState, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating backup directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	orderRows := make([]map[string]interface{}, 0, len(state.Orders))
	for _, o := range state.Orders {
		orderRows = append(orderRows, Store.OrderToDoc(o))
	}
	if err := writeSheet(f, SheetOrders, Store.OrderColumns, orderRows); err != nil {
		return "", err
	}

	expenseRows := make([]map[string]interface{}, 0, len(state.Expenses))
	for _, e := range state.Expenses {
		expenseRows = append(expenseRows, Store.ExpenseToDoc(e))
	}
	if err := writeSheet(f, SheetExpenses, Store.ExpenseColumns, expenseRows); err != nil {
		return "", err
	}

	if err := writeSheet(f, SheetTotals, opaqueColumns(state.Totals), state.Totals); err != nil {
		return "", err
	}
	if err := writeSheet(f, SheetLists, []string{"Nombre", "Valores"}, Store.ListsToDocs(state.Lists)); err != nil {
		return "", err
	}
	if err := writeSheet(f, SheetJobs, opaqueColumns(state.Jobs), state.Jobs); err != nil {
		return "", err
	}

	// The default sheet is replaced by the collection sheets.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Printf("Could not remove default sheet: %v", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("imperyo_backup_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving backup file: %v", err)
	}
	log.Printf("Backup snapshot written to %s", path)
	return path, nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows []map[string]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %v", sheet, err)
	}
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header of %s: %v", sheet, err)
	}
	for r, row := range rows {
		cells := make([]interface{}, len(columns))
		for i, c := range columns {
			cells[i] = cellValue(row[c])
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("error writing row %d of %s: %v", r+2, sheet, err)
		}
	}
	return nil
}

// opaqueColumns derives a stable header for a passthrough collection: the
// sorted union of every key seen.
func opaqueColumns(rows []map[string]interface{}) []string {
	seen := map[string]bool{}
	var columns []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

// cellValue renders a store value into a spreadsheet cell. Dates lose any
// timezone, lists are serialised as JSON text.
func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	case []string:
		encoded, _ := json.Marshal(t)
		return string(encoded)
	case []interface{}:
		encoded, _ := json.Marshal(t)
		return string(encoded)
	default:
		return t
	}
}
