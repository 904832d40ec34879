package export

import (
	"fmt"

	"github.com/SscSPs/money_billing/internal/dto"
	"github.com/xuri/excelize/v2"
)

// BillsSheet is the name of the single worksheet in a bills export.
const BillsSheet = "Bills"

// XLSXContentType is the MIME type of the generated workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var billHeaders = []any{
	"Account ID", "Date", "Date Billed", "Status", "User", "Description",
	"Amount", "Currency", "Min Amount", "Symbol",
}

// BillsWorkbook renders one page of the bill listing as a workbook.
// The caller owns the returned file and must Close it.
func BillsWorkbook(bills []dto.BillResponse) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", BillsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(BillsSheet, "A1", &billHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, b := range bills {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{
			b.AccountID,
			b.Date,
			b.DateBilled,
			b.Status.String(),
			b.UserID,
			b.Description,
			b.Amount.InexactFloat64(),
			b.CurrencyCode,
			b.MinAmountLabel,
			b.CurrencySymbol,
		}
		if err := f.SetSheetRow(BillsSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	widths := map[string]float64{"A": 38, "B": 12, "C": 12, "D": 12, "E": 20, "F": 40, "G": 14, "H": 10, "I": 14, "J": 8}
	for col, w := range widths {
		if err := f.SetColWidth(BillsSheet, col, col, w); err != nil {
			f.Close()
			return nil, fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	return f, nil
}
