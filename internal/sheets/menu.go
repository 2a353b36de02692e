package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"
)

// fieldHeader maps API field names to the pt-BR column headers of the
// menu sheet. The editor locates columns by header text so column
// reordering in the spreadsheet does not break edits.
var fieldHeader = map[string]string{
	"id":             "ID Item (único)",
	"name":           "Nome do Item",
	"description":    "Descrição",
	"category":       "Categoria",
	"price":          "Preço",
	"price4Slices":   "Preço 4 fatias",
	"price6Slices":   "Preço 6 fatias",
	"basePrice":      "Preço 8 fatias",
	"price10Slices":  "Preço 10 fatias",
	"isPizza":        "É Pizza? (sim/não)",
	"isCustomizable": "É Montável? (sim/não)",
	"available":      "Disponível (sim/não)",
	"imageUrl":       "Imagem",
}

var ErrItemNotFound = fmt.Errorf("menu item not found")

// Editor performs structural edits on the menu sheet. Reads for order
// taking keep going through the published CSV endpoints; the Sheets API
// is only used here, where writes are needed.
type Editor struct {
	client        *Client
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger
}

func NewEditor(client *Client, spreadsheetID, sheetName string, logger *zap.Logger) *Editor {
	if sheetName == "" {
		sheetName = "cardapio"
	}
	return &Editor{client: client, spreadsheetID: spreadsheetID, sheetName: sheetName, logger: logger}
}

// AddItem appends a row built from the field values, ordered by the
// sheet's current header row. Unknown fields are ignored.
func (e *Editor) AddItem(ctx context.Context, fields map[string]string) error {
	if strings.TrimSpace(fields["id"]) == "" {
		return fmt.Errorf("item id is required")
	}
	headers, _, err := e.load(ctx)
	if err != nil {
		return err
	}

	row := make([]any, len(headers))
	for i := range row {
		row[i] = ""
	}
	for field, value := range fields {
		if idx, ok := e.columnIndex(headers, field); ok {
			row[idx] = value
		}
	}
	if err := e.client.AppendRow(ctx, e.spreadsheetID, e.sheetName, row); err != nil {
		return err
	}
	e.logger.Info("menu item added", zap.String("itemId", fields["id"]))
	return nil
}

// UpdateItem overwrites the given fields on the row whose id column
// matches itemID.
func (e *Editor) UpdateItem(ctx context.Context, itemID string, fields map[string]string) error {
	headers, rows, err := e.load(ctx)
	if err != nil {
		return err
	}
	rowNumber, err := e.findRow(headers, rows, itemID)
	if err != nil {
		return err
	}

	var data []*sheets.ValueRange
	for field, value := range fields {
		idx, ok := e.columnIndex(headers, field)
		if !ok || field == "id" {
			continue
		}
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", e.sheetName, columnLetter(idx), rowNumber),
			Values: [][]any{{value}},
		})
	}
	if len(data) == 0 {
		return fmt.Errorf("no editable fields in request")
	}
	if err := e.client.updateCells(ctx, e.spreadsheetID, data); err != nil {
		return err
	}
	e.logger.Info("menu item updated", zap.String("itemId", itemID), zap.Int("fields", len(data)))
	return nil
}

// DeleteItem removes the row whose id column matches itemID.
func (e *Editor) DeleteItem(ctx context.Context, itemID string) error {
	headers, rows, err := e.load(ctx)
	if err != nil {
		return err
	}
	rowNumber, err := e.findRow(headers, rows, itemID)
	if err != nil {
		return err
	}
	if err := e.client.deleteRow(ctx, e.spreadsheetID, e.sheetName, int64(rowNumber)); err != nil {
		return err
	}
	e.logger.Info("menu item deleted", zap.String("itemId", itemID))
	return nil
}

// SetAvailability flips the "Disponível (sim/não)" cell.
func (e *Editor) SetAvailability(ctx context.Context, itemID string, available bool) error {
	value := "não"
	if available {
		value = "sim"
	}
	return e.UpdateItem(ctx, itemID, map[string]string{"available": value})
}

func (e *Editor) load(ctx context.Context) (headers []string, rows [][]any, err error) {
	values, err := e.client.ReadRange(ctx, e.spreadsheetID, e.sheetName)
	if err != nil {
		return nil, nil, err
	}
	if len(values) == 0 {
		return nil, nil, fmt.Errorf("sheet %s has no header row", e.sheetName)
	}
	headers = make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(fmt.Sprint(cell)))
	}
	return headers, values[1:], nil
}

func (e *Editor) columnIndex(headers []string, field string) (int, bool) {
	header, ok := fieldHeader[field]
	if !ok {
		return 0, false
	}
	want := strings.ToLower(header)
	for i, h := range headers {
		if h == want {
			return i, true
		}
	}
	return 0, false
}

// findRow returns the 1-based sheet row of the item, header included.
func (e *Editor) findRow(headers []string, rows [][]any, itemID string) (int, error) {
	idCol, ok := e.columnIndex(headers, "id")
	if !ok {
		return 0, fmt.Errorf("sheet %s has no id column", e.sheetName)
	}
	want := strings.TrimSpace(itemID)
	for i, row := range rows {
		if idCol < len(row) && strings.TrimSpace(fmt.Sprint(row[idCol])) == want {
			return i + 2, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}
