package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptData carries the fields rendered onto a payment receipt.
type ReceiptData struct {
	PaymentID      string
	TransactionID  string
	StudentEmail   string
	ClassName      string
	InstructorName string
	Amount         int64
	Currency       string
	PaidAt         time.Time
}

// ReceiptRenderer renders payment receipts as PDF documents.
type ReceiptRenderer struct{}

// NewReceiptRenderer constructs a receipt renderer.
func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{}
}

// Render produces a single-page PDF receipt.
func (r *ReceiptRenderer) Render(data ReceiptData) ([]byte, error) {
	if data.PaymentID == "" {
		return nil, fmt.Errorf("receipt requires a payment id")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	rows := [][2]string{
		{"Receipt No.", data.PaymentID},
		{"Transaction", data.TransactionID},
		{"Student", data.StudentEmail},
		{"Class", data.ClassName},
		{"Instructor", data.InstructorName},
		{"Amount", fmt.Sprintf("%d %s", data.Amount, data.Currency)},
		{"Paid At", data.PaidAt.UTC().Format(time.RFC1123)},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 9, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(130, 9, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Thank you for learning with us.", "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
