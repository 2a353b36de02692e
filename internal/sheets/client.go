package sheets

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Sheets API with the handful of operations the
// service needs: appending archive rows, reading ranges back and the
// menu editing batch updates.
type Client struct {
	svc    *sheets.Service
	logger *zap.Logger
}

// NewClient authenticates with a base64-encoded service account key.
func NewClient(ctx context.Context, credentialsBase64 string, logger *zap.Logger) (*Client, error) {
	raw, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("decode google credentials: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(raw, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, logger: logger}, nil
}

// AppendRow appends one row after the sheet's last data row.
// USER_ENTERED keeps dates and currency parsed the way a typist would
// get them.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, sheetName string, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, sheetName+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", sheetName, err)
	}
	return nil
}

// ReadRange returns the cell values of an A1 range, e.g. "encerrados!A1:K".
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, rangeA1 string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rangeA1, err)
	}
	return resp.Values, nil
}

func (c *Client) updateCells(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange) error {
	if len(data) == 0 {
		return nil
	}
	_, err := c.svc.Spreadsheets.Values.
		BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data:             data,
		}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("batch update cells: %w", err)
	}
	return nil
}

// sheetID resolves a sheet's numeric id, required by structural
// requests like DeleteDimension.
func (c *Client) sheetID(ctx context.Context, spreadsheetID, sheetName string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheetName {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", sheetName)
}

// deleteRow removes one row. rowNumber is 1-based, as shown in the UI.
func (c *Client) deleteRow(ctx context.Context, spreadsheetID, sheetName string, rowNumber int64) error {
	id, err := c.sheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	_, err = c.svc.Spreadsheets.
		BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    id,
						Dimension:  "ROWS",
						StartIndex: rowNumber - 1,
						EndIndex:   rowNumber,
					},
				},
			}},
		}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("delete row %d from %s: %w", rowNumber, sheetName, err)
	}
	return nil
}

func columnLetter(index int) string {
	index++
	letters := ""
	for index > 0 {
		index--
		letters = string(rune('A'+index%26)) + letters
		index /= 26
	}
	return letters
}
