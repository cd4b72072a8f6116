package Backup

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"Imperyo/Models"
	"Imperyo/Queries"
	"Imperyo/Store"
)

// BuildOrdersExport produces the downloadable report for one year: a sheet
// with the year's orders in canonical columns and a sheet with the exploded
// product analytics.
func BuildOrdersExport(orders []Models.Order, year int) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	yearOrders := Queries.OrdersOfYear(orders, year)
	rows := make([]map[string]interface{}, 0, len(yearOrders))
	for _, o := range yearOrders {
		rows = append(rows, Store.OrderToDoc(o))
	}
	if err := writeSheet(f, "Pedidos", Store.OrderColumns, rows); err != nil {
		return nil, err
	}

	exploded := Queries.ExplodeProducts(orders, year)
	productColumns := []string{"Pedido", "Cliente", "Club", "Producto", "Tela", "Cantidad", "Precio Unitario", "Total"}
	productRows := make([]map[string]interface{}, 0, len(exploded))
	for _, r := range exploded {
		productRows = append(productRows, map[string]interface{}{
			"Pedido":          r.OrderRef,
			"Cliente":         r.Client,
			"Club":            r.Club,
			"Producto":        r.Product,
			"Tela":            r.Fabric,
			"Cantidad":        r.Quantity,
			"Precio Unitario": r.UnitPrice,
			"Total":           r.Total,
		})
	}
	if err := writeSheet(f, "Productos", productColumns, productRows); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %v", err)
	}
	return f.WriteToBuffer()
}
