package projectdetail

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
)

const (
	sheetMargin = 15.0
	qrSize      = 38.0
)

// RenderProjectSheetPDF lays out a one-page A4 summary of a project with a
// QR code linking to pageURL. Long detail lists flow onto extra pages.
func RenderProjectSheetPDF(data PageData, pageURL string, printedAt time.Time) ([]byte, error) {
	p := data.Project
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("project title is required")
	}
	qrPNG, err := renderQRPNG(pageURL, 512)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ficha de proyecto", true)
	pdf.SetMargins(sheetMargin, sheetMargin, sheetMargin)
	pdf.SetAutoPageBreak(true, sheetMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*sheetMargin
	textW := contentW - qrSize - 6

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("project-qr", opt, bytes.NewReader(qrPNG))
	pdf.ImageOptions("project-qr", pageW-sheetMargin-qrSize, sheetMargin, qrSize, qrSize, false, opt, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(textW, 5, tr(strings.ToUpper(p.Category)), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	titleFont := fitFontSizeForWidth(pdf, "Helvetica", "B", 26, 14, tr(p.Title), textW)
	pdf.SetFont("Helvetica", "B", titleFont)
	pdf.MultiCell(textW, 11, tr(p.Title), "", "L", false)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(textW, 5.5, tr(p.Description), "", "L", false)

	if pdf.GetY() < sheetMargin+qrSize+4 {
		pdf.SetY(sheetMargin + qrSize + 4)
	}

	if len(data.Stats) > 0 {
		sheetHeading(pdf, tr, "Cifras")
		colW := contentW / float64(min(len(data.Stats), 4))
		for i, s := range data.Stats {
			if i > 0 && i%4 == 0 {
				pdf.Ln(14)
			}
			x := sheetMargin + float64(i%4)*colW
			y := pdf.GetY()
			pdf.SetXY(x, y)
			pdf.SetFont("Helvetica", "B", 16)
			pdf.CellFormat(colW, 8, tr(s.Value), "", 2, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(colW, 5, tr(s.Label), "", 0, "L", false, 0, "")
			pdf.SetXY(x, y)
		}
		pdf.Ln(16)
	}

	if len(p.Technologies) > 0 {
		sheetHeading(pdf, tr, "Stack tecnológico")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(contentW, 5.5, tr(strings.Join(p.Technologies, "  ·  ")), "", "L", false)
	}

	for _, n := range data.Narrative {
		sheetHeading(pdf, tr, n.Label)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(contentW, 5.5, tr(n.Value), "", "L", false)
	}

	for _, s := range data.Sections {
		sheetHeading(pdf, tr, s.Title)
		for _, block := range s.Raw {
			writeBlock(pdf, tr, block, contentW)
		}
	}

	pdf.SetY(-sheetMargin - 6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(contentW, 5, tr("Codes-Labs · "+pageURL+" · "+printedAt.Format("02/01/2006")), "", 0, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func sheetHeading(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// writeBlock prints markdown-lite as plain text: headings bold, list items
// with a bullet, bold markers dropped.
func writeBlock(pdf *gofpdf.Fpdf, tr func(string) string, block string, width float64) {
	for _, line := range strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "##" || strings.HasPrefix(line, "## "):
			title := strings.TrimSpace(strings.TrimPrefix(line, "##"))
			if title == "" {
				continue
			}
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(width, 6, tr(plain(title)), "", "L", false)
		case strings.HasPrefix(line, "- "):
			pdf.SetFont("Helvetica", "", 10.5)
			pdf.SetX(sheetMargin + 4)
			pdf.MultiCell(width-4, 5, tr("• "+plain(line[2:])), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10.5)
			pdf.MultiCell(width, 5, tr(plain(line)), "", "L", false)
		}
	}
	pdf.Ln(1.5)
}

func plain(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

func fitFontSizeForWidth(pdf *gofpdf.Fpdf, family, style string, base, min float64, text string, maxWidth float64) float64 {
	if maxWidth <= 0 {
		return min
	}
	size := base
	pdf.SetFont(family, style, size)
	for size > min && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont(family, style, size)
	}
	return size
}

func renderQRPNG(value string, size int) ([]byte, error) {
	code, err := qr.Encode(value, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
