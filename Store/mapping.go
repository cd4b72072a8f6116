package Store

import (
	"Imperyo/AbstractFunctions"
	"Imperyo/Models"
)

// Collection names as they exist in the store.
const (
	CollectionOrders    = "orders"
	CollectionExpenses  = "expenses"
	CollectionLists     = "catalogue_lists"
	CollectionTotals    = "totals"
	CollectionJobs      = "jobs"
	CollectionProspects = "prospects"
)

// Canonical order document columns. The Spanish names are preserved
// verbatim for compatibility with the documents already in the store;
// unknown columns on read are dropped, missing ones come back as null.
var OrderColumns = []string{
	"ID", "Year", "Products", "Cliente", "Telefono", "Club",
	"Breve Descripción", "Fecha entrada", "Fecha Salida",
	"Precio", "Precio Factura", "Tipo de pago", "Adelanto", "Observaciones",
	"Inicio Trabajo", "Trabajo Terminado", "Cobrado", "Retirado", "Pendiente",
}

// Canonical expense document columns.
var ExpenseColumns = []string{"ID", "Fecha", "Concepto", "Importe", "Tipo"}

// Canonical prospect document columns.
var ProspectColumns = []string{"Nombre", "Telefono", "Club", "Interes", "Estado", "Notas", "Creado", "Actualizado"}

// Expense type labels as stored.
const (
	storedExpenseFixed    = "Fijo"
	storedExpenseVariable = "Variable"
)

// Catalogue list document names.
const (
	listProducts     = "productos"
	listFabrics      = "telas"
	listPaymentTypes = "tipos_pago"
	listClubs        = "clubes"
)

// OrderToDoc projects an order onto its canonical field map. Every value
// passes through ToStoreValue so no not-a-time or NaN sentinel ever reaches
// the store; missing dates go out as null.
func OrderToDoc(o Models.Order) map[string]interface{} {
	fields := map[string]interface{}{
		"ID":                o.ID,
		"Year":              o.Year,
		"Products":          Models.EncodeProducts(o.Products),
		"Cliente":           o.Client,
		"Telefono":          o.Phone,
		"Club":              o.Club,
		"Breve Descripción": o.BriefDescription,
		"Fecha entrada":     o.EntryDate,
		"Fecha Salida":      o.ExitDate,
		"Precio":            o.Price,
		"Precio Factura":    o.InvoicePrice,
		"Tipo de pago":      o.PaymentType,
		"Adelanto":          o.Advance,
		"Observaciones":     o.Observations,
		"Inicio Trabajo":    o.Started,
		"Trabajo Terminado": o.Finished,
		"Cobrado":           o.Paid,
		"Retirado":          o.PickedUp,
		"Pendiente":         o.Pending,
	}
	for k, v := range fields {
		fields[k] = AbstractFunctions.ToStoreValue(v)
	}
	return fields
}

// DocToOrder rebuilds an order from a stored document, coercing every field
// and keeping the store id as a hidden attribute. An unreadable id comes
// back as 0 and sorts last.
func DocToOrder(d Document) Models.Order {
	f := d.Fields
	id, _ := AbstractFunctions.ToInt(f["ID"])
	year, _ := AbstractFunctions.ToInt(f["Year"])
	return Models.Order{
		ID:               id,
		Year:             year,
		Products:         Models.DecodeProducts(AbstractFunctions.ToString(f["Products"])),
		Client:           AbstractFunctions.ToString(f["Cliente"]),
		Phone:            AbstractFunctions.ToString(f["Telefono"]),
		Club:             AbstractFunctions.ToString(f["Club"]),
		BriefDescription: AbstractFunctions.ToString(f["Breve Descripción"]),
		Observations:     AbstractFunctions.ToString(f["Observaciones"]),
		EntryDate:        AbstractFunctions.NormalizeDate(f["Fecha entrada"]),
		ExitDate:         AbstractFunctions.NormalizeDate(f["Fecha Salida"]),
		Price:            AbstractFunctions.ToFloat(f["Precio"]),
		InvoicePrice:     AbstractFunctions.ToFloat(f["Precio Factura"]),
		Advance:          AbstractFunctions.ToFloat(f["Adelanto"]),
		PaymentType:      AbstractFunctions.ToString(f["Tipo de pago"]),
		Started:          AbstractFunctions.ToBool(f["Inicio Trabajo"]),
		Finished:         AbstractFunctions.ToBool(f["Trabajo Terminado"]),
		Paid:             AbstractFunctions.ToBool(f["Cobrado"]),
		PickedUp:         AbstractFunctions.ToBool(f["Retirado"]),
		Pending:          AbstractFunctions.ToBool(f["Pendiente"]),
		StoreDocID:       d.ID,
	}
}

// ExpenseToDoc projects an expense onto its canonical field map.
func ExpenseToDoc(e Models.Expense) map[string]interface{} {
	storedType := storedExpenseVariable
	if e.Type == Models.ExpenseFixed {
		storedType = storedExpenseFixed
	}
	fields := map[string]interface{}{
		"ID":       e.ID,
		"Fecha":    e.Date,
		"Concepto": e.Concept,
		"Importe":  e.Amount,
		"Tipo":     storedType,
	}
	for k, v := range fields {
		fields[k] = AbstractFunctions.ToStoreValue(v)
	}
	return fields
}

// DocToExpense rebuilds an expense from a stored document.
func DocToExpense(d Document) Models.Expense {
	f := d.Fields
	id, _ := AbstractFunctions.ToInt(f["ID"])
	expenseType := Models.ExpenseVariable
	if AbstractFunctions.ToString(f["Tipo"]) == storedExpenseFixed {
		expenseType = Models.ExpenseFixed
	}
	return Models.Expense{
		ID:         id,
		Date:       AbstractFunctions.NormalizeDate(f["Fecha"]),
		Concept:    AbstractFunctions.ToString(f["Concepto"]),
		Amount:     AbstractFunctions.ToFloat(f["Importe"]),
		Type:       expenseType,
		StoreDocID: d.ID,
	}
}

// ProspectToDoc projects a prospect onto its canonical field map.
func ProspectToDoc(p Models.Prospect) map[string]interface{} {
	fields := map[string]interface{}{
		"Nombre":      p.Name,
		"Telefono":    p.Phone,
		"Club":        p.Club,
		"Interes":     p.Interest,
		"Estado":      p.Status,
		"Notas":       p.Notes,
		"Creado":      p.CreatedAt,
		"Actualizado": p.UpdatedAt,
	}
	for k, v := range fields {
		fields[k] = AbstractFunctions.ToStoreValue(v)
	}
	return fields
}

// DocToProspect rebuilds a prospect from a stored document.
func DocToProspect(d Document) Models.Prospect {
	f := d.Fields
	return Models.Prospect{
		Name:       AbstractFunctions.ToString(f["Nombre"]),
		Phone:      AbstractFunctions.ToString(f["Telefono"]),
		Club:       AbstractFunctions.ToString(f["Club"]),
		Interest:   AbstractFunctions.ToString(f["Interes"]),
		Status:     AbstractFunctions.ToString(f["Estado"]),
		Notes:      AbstractFunctions.ToString(f["Notas"]),
		CreatedAt:  AbstractFunctions.NormalizeDate(f["Creado"]),
		UpdatedAt:  AbstractFunctions.NormalizeDate(f["Actualizado"]),
		StoreDocID: d.ID,
	}
}

// ListsFromDocs assembles the catalogue lists from their documents. Each
// document carries a list name and its values.
func ListsFromDocs(docs []Document) Models.CatalogueLists {
	var lists Models.CatalogueLists
	for _, d := range docs {
		values := toStringSlice(d.Fields["Valores"])
		switch AbstractFunctions.ToString(d.Fields["Nombre"]) {
		case listProducts:
			lists.Products = values
		case listFabrics:
			lists.Fabrics = values
		case listPaymentTypes:
			lists.PaymentTypes = values
		case listClubs:
			lists.Clubs = values
		}
	}
	return lists
}

// ListsToDocs projects the catalogue lists back into one document per list.
func ListsToDocs(lists Models.CatalogueLists) []map[string]interface{} {
	return []map[string]interface{}{
		{"Nombre": listProducts, "Valores": lists.Products},
		{"Nombre": listFabrics, "Valores": lists.Fabrics},
		{"Nombre": listPaymentTypes, "Valores": lists.PaymentTypes},
		{"Nombre": listClubs, "Valores": lists.Clubs},
	}
}

func toStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		if already, ok := v.([]string); ok {
			return already
		}
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		values = append(values, AbstractFunctions.ToString(item))
	}
	return values
}
