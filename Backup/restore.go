package Backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"Imperyo/AbstractFunctions"
	"Imperyo/Models"
	"Imperyo/Store"
)

// sheetCollections maps snapshot sheets to their store collections, in the
// order they are restored.
var sheetCollections = []struct {
	Sheet      string
	Collection string
}{
	{SheetOrders, Store.CollectionOrders},
	{SheetExpenses, Store.CollectionExpenses},
	{SheetTotals, Store.CollectionTotals},
	{SheetLists, Store.CollectionLists},
	{SheetJobs, Store.CollectionJobs},
}

// Restore reads a snapshot spreadsheet and, for each mapped sheet, wipes
// the corresponding collection and re-inserts one document per row. Sheets
// restored before a failure stand; the returned error lists what failed.
func Restore(ctx context.Context, gateway *Store.Gateway, path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: opening snapshot: %v", Models.ErrRestore, err)
	}
	defer f.Close()

	var failures []string
	for _, m := range sheetCollections {
		if err := restoreSheet(ctx, gateway, f, m.Sheet, m.Collection); err != nil {
			log.Printf("Restore of sheet %s failed: %v", m.Sheet, err)
			failures = append(failures, fmt.Sprintf("%s (%v)", m.Sheet, err))
			continue
		}
		log.Printf("Restored sheet %s into %s", m.Sheet, m.Collection)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %s", Models.ErrRestore, strings.Join(failures, "; "))
	}
	return nil
}

func restoreSheet(ctx context.Context, gateway *Store.Gateway, f *excelize.File, sheet, collection string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading sheet: %v", err)
	}
	if len(rows) == 0 {
		return gateway.Save(ctx, collection, nil)
	}

	header := rows[0]
	docs := make([]map[string]interface{}, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		doc := make(map[string]interface{}, len(header))
		for i, column := range header {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			doc[column] = restoreValue(column, cell)
		}
		docs = append(docs, doc)
	}
	return gateway.Save(ctx, collection, docs)
}

// restoreValue rebuilds a store value from a spreadsheet cell: JSON lists
// come back as lists, timestamps are re-parsed with any tz-info stripped,
// numbers become numeric, everything else stays text. The Products column
// is the one JSON-looking field that must stay a string.
func restoreValue(column, cell string) interface{} {
	cell = strings.TrimSpace(cell)
	if AbstractFunctions.IsNullish(cell) {
		return nil
	}
	if column != "Products" && strings.HasPrefix(cell, "[") {
		var list []interface{}
		if err := json.Unmarshal([]byte(cell), &list); err == nil {
			return list
		}
	}
	if t := parseNaiveTimestamp(cell); !t.IsZero() {
		return t
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	}
	return cell
}

// parseNaiveTimestamp accepts the snapshot timestamp format plus RFC3339
// exports from older backups, dropping the timezone either way.
func parseNaiveTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		}
	}
	return time.Time{}
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
