package services

import (
	"fmt"
	"time"

	"ssplt10-backend/models"

	"github.com/xuri/excelize/v2"
)

// BuildRegistrationsWorkbook renders registration payment rows into an
// xlsx workbook for the league office.
func BuildRegistrationsWorkbook(regs []models.PlayerRegistration) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"ID", "Name", "Email", "Phone", "Status", "Payment Status",
		"Amount (INR)", "Razorpay Payment ID", "Razorpay Order ID", "Updated At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("error building header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("error writing header: %w", err)
		}
	}

	for row, reg := range regs {
		values := []interface{}{
			reg.ID, reg.Name, reg.Email, reg.Phone, reg.Status, reg.PaymentStatus,
			reg.PaymentAmount, reg.RazorpayPaymentID, reg.RazorpayOrderID,
			reg.UpdatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("error building cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("error writing row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}
