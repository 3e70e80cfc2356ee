package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceipt creates a PDF payment receipt and returns its path.
// The caller owns the file and removes it after use.
func GenerateReceipt(name, registrationID, paymentID, orderID string, amount float64) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "SSPL T10 - Payment Receipt")
	pdf.Ln(14)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Player: %s", name))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("Registration ID: %s", registrationID))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("Payment ID: %s", paymentID))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("Order ID: %s", orderID))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("Amount Paid: INR %.2f", amount))
	pdf.Ln(14)
	pdf.Cell(40, 10, "Thank you for registering with the Southern Street Premier League.")

	fileName := filepath.Join(os.TempDir(), fmt.Sprintf("receipt_%s.pdf", paymentID))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", fmt.Errorf("error generating receipt PDF: %w", err)
	}

	return fileName, nil
}
