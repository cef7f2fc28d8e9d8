package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/majid-mohammad/gosonnet/internal/analysis"
	"github.com/majid-mohammad/gosonnet/internal/density"
)

const (
	inchToMM      = 25.4
	pageWidth     = 11 * inchToMM // Letter landscape
	pageHeight    = 8.5 * inchToMM
	pageMargin    = 0.5 * inchToMM
	contentWidth  = pageWidth - 2*pageMargin
	contentHeight = pageHeight - 2*pageMargin
	lineHeight    = 6 // mm
)

// pdfWriter tracks flowing content on a landscape Letter page and applies
// the report's named text styles.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	y   float64
}

func newPDFWriter() *pdfWriter {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()
	return &pdfWriter{pdf: pdf, y: pageMargin}
}

func (w *pdfWriter) style(name string) {
	switch name {
	case "h1":
		w.pdf.SetFont("Arial", "B", 16)
		w.pdf.SetTextColor(0, 0, 0)
	case "h2":
		w.pdf.SetFont("Arial", "B", 13)
		w.pdf.SetTextColor(0, 0, 0)
	case "tableHeader":
		w.pdf.SetFont("Arial", "B", 9)
		w.pdf.SetFillColor(210, 210, 210)
		w.pdf.SetTextColor(0, 0, 0)
	case "tableCell":
		w.pdf.SetFont("Arial", "", 9)
		w.pdf.SetTextColor(40, 40, 40)
	default:
		w.pdf.SetFont("Arial", "", 10)
		w.pdf.SetTextColor(0, 0, 0)
	}
}

func (w *pdfWriter) ensure(height float64) {
	if w.y+height > pageMargin+contentHeight {
		w.pdf.AddPage()
		w.y = pageMargin
	}
}

func (w *pdfWriter) paragraph(text, styleName, align string) {
	w.style(styleName)
	w.ensure(lineHeight)
	w.pdf.SetXY(pageMargin, w.y)
	w.pdf.MultiCell(contentWidth, lineHeight, text, "", align, false)
	w.y = w.pdf.GetY() + 1
}

func (w *pdfWriter) spacer(height float64) {
	w.ensure(height)
	w.y += height
}

func (w *pdfWriter) newPage() {
	w.pdf.AddPage()
	w.y = pageMargin
}

// table writes a bordered table with a shaded header row. Column widths are
// fractions of the content width.
func (w *pdfWriter) table(headers []string, widths []float64, rows [][]string) {
	abs := make([]float64, len(widths))
	for i, rel := range widths {
		abs[i] = rel * contentWidth
	}

	w.ensure(lineHeight * 2)
	x := pageMargin
	w.style("tableHeader")
	for i, h := range headers {
		w.pdf.SetXY(x, w.y)
		w.pdf.CellFormat(abs[i], lineHeight, h, "1", 0, "C", true, 0, "")
		x += abs[i]
	}
	w.y += lineHeight

	w.style("tableCell")
	for _, row := range rows {
		w.ensure(lineHeight)
		x = pageMargin
		for i, cell := range row {
			w.pdf.SetXY(x, w.y)
			w.pdf.CellFormat(abs[i], lineHeight, cell, "1", 0, "C", false, 0, "")
			x += abs[i]
		}
		w.y += lineHeight
	}
}

func (w *pdfWriter) image(name string, data []byte, width, height float64, caption string) {
	if width > contentWidth {
		height *= contentWidth / width
		width = contentWidth
	}
	w.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))

	extra := 0.0
	if caption != "" {
		extra = lineHeight + 1
	}
	w.ensure(height + extra)
	w.pdf.ImageOptions(name, pageMargin, w.y, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	w.y += height
	if caption != "" {
		w.spacer(1)
		w.paragraph(caption, "normal", "C")
	}
	w.spacer(2)
}

// BuildReport writes a PDF summarizing one current-density export: header
// metadata, grid statistics, the hotspot ranking, and the rendered plots.
// The images map uses the keys "heatmap", "colorbar", and "profile"; missing
// entries are noted in the document rather than failing the build.
func BuildReport(path string, doc *density.Document, stats *analysis.GridStats,
	hotspots []analysis.Hotspot, images map[string][]byte) error {

	h, err := doc.Header()
	if err != nil {
		return err
	}

	w := newPDFWriter()
	w.paragraph("Sonnet Current Density Report", "h1", "C")
	w.spacer(3)

	w.paragraph("Simulation", "h2", "L")
	w.table(
		[]string{"Source file", "Sonnet version", "Frequency (GHz)", "Level", "Grid step (dx, dy)", "Metal area"},
		[]float64{0.3, 0.12, 0.14, 0.1, 0.18, 0.16},
		[][]string{{
			h.SourceFileName,
			h.SourceToolVersion,
			fmt.Sprintf("%.6g", h.FrequencyHz/1e9),
			h.LevelString,
			fmt.Sprintf("%g, %g %s", h.DX, h.DY, h.PositionUnitLabel),
			fmt.Sprintf("%g %s", h.Area, h.AreaUnitLabel),
		}},
	)
	w.spacer(4)

	w.paragraph("Ports", "h2", "L")
	portRows := make([][]string, len(h.Ports))
	for i, p := range h.Ports {
		portRows[i] = []string{
			fmt.Sprintf("%d", p.Number),
			fmt.Sprintf("%g", p.DriveVoltage),
			fmt.Sprintf("%g", p.DrivePhase),
		}
	}
	w.table(
		[]string{"Port", "Drive voltage (V)", "Drive phase (deg)"},
		[]float64{0.2, 0.4, 0.4},
		portRows,
	)
	w.spacer(4)

	if stats != nil {
		w.paragraph("Grid statistics", "h2", "L")
		w.table(
			[]string{"Min", "Max", "Mean", "Std dev", "Peak position", "Shape", "Missing"},
			[]float64{0.13, 0.13, 0.13, 0.13, 0.2, 0.14, 0.14},
			[][]string{{
				fmt.Sprintf("%.4g", stats.Min),
				fmt.Sprintf("%.4g", stats.Max),
				fmt.Sprintf("%.4g", stats.Mean),
				fmt.Sprintf("%.4g", stats.StdDev),
				fmt.Sprintf("(%g, %g) %s", stats.PeakX, stats.PeakY, h.PositionUnitLabel),
				fmt.Sprintf("%d x %d", stats.Rows, stats.Cols),
				fmt.Sprintf("%d", stats.MissingCells),
			}},
		)
		w.spacer(4)
	}

	if len(hotspots) > 0 {
		w.paragraph(fmt.Sprintf("Top %d hotspots (%s)", len(hotspots), h.CurrentUnitLabel), "h2", "L")
		rows := make([][]string, len(hotspots))
		for i, spot := range hotspots {
			rows[i] = []string{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("%g", spot.X),
				fmt.Sprintf("%g", spot.Y),
				fmt.Sprintf("%.4g", spot.Value),
			}
		}
		w.table(
			[]string{"Rank", "x", "y", "Current density"},
			[]float64{0.15, 0.25, 0.25, 0.35},
			rows,
		)
	}

	w.newPage()
	w.paragraph("Current Density Map", "h1", "C")
	w.spacer(3)

	imgWidth := contentWidth * 0.75
	if data, ok := images["heatmap"]; ok && len(data) > 0 {
		w.image("heatmap", data, imgWidth, imgWidth*0.75, "RMS current density over the metal level")
	} else {
		w.paragraph("Heatmap not available.", "normal", "L")
	}
	if data, ok := images["colorbar"]; ok && len(data) > 0 {
		w.image("colorbar", data, imgWidth, imgWidth*0.125, "")
	}
	if data, ok := images["profile"]; ok && len(data) > 0 {
		w.newPage()
		w.paragraph("Cross Section", "h1", "C")
		w.spacer(3)
		w.image("profile", data, imgWidth, imgWidth*0.5, "Current density along the selected y cut")
	}

	return w.pdf.OutputFileAndClose(path)
}
