package infra

// pdf.go — registration card generation using go-pdf/fpdf.
// Renders an A6 card with the guest's name, booking reference and stay dates,
// attached to the booking-progress email so the guest can verify details
// before arrival. The output file is saved to storagePath/card_{occupant}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// RegistrationCard carries the fields printed on the card.
type RegistrationCard struct {
	GuestName    string
	BookingRef   string
	OccupantID   string
	CheckInDate  string
	CheckOutDate string
}

// GenerateRegistrationCardPDF renders the card and returns the path of the
// generated file. storagePath is created if needed.
func GenerateRegistrationCardPDF(card RegistrationCard, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("card_%s.pdf", card.OccupantID)
	filePath := filepath.Join(storagePath, fileName)

	// A6 landscape — 148mm × 105mm
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 105, Ht: 148},
	})
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Guest Registration Card", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, card.GuestName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Booking: %s", card.BookingRef), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Check-in: %s", card.CheckInDate), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Check-out: %s", card.CheckOutDate), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
