package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"pirlanta/internal/assessment"
	"pirlanta/internal/models"
)

// Renderer: интерфейс (удобно мокать в тестах)
type Renderer interface {
	RenderReport(rc models.ReportContext) ([]byte, error)
}

// ReportGenerator: PDF-отчёт по опросу цифровой зрелости
type ReportGenerator struct {
	RootDir  string // архив отчётов, например "./files"
	FontPath string // TTF с кириллицей/деванагари, например "assets/fonts/DejaVuSans.ttf"
	LogoPath string // PNG/JPG, опционально
	fontName string
}

func NewReportGenerator(rootDir, fontPath, logoPath string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		LogoPath: logoPath,
		fontName: "DejaVu",
	}
}

// RenderReport: основной рендер с UTF-8 шрифтом; если шрифт не подключился,
// повторяем встроенным Helvetica.
func (g *ReportGenerator) RenderReport(rc models.ReportContext) ([]byte, error) {
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err == nil {
			out, err := g.render(rc, true)
			if err == nil {
				return out, nil
			}
			log.Printf("[pdf][report] utf8 render failed, falling back to core font: %v", err)
		}
	}
	return g.render(rc, false)
}

// Save кладёт копию отчёта в RootDir и возвращает путь
func (g *ReportGenerator) Save(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty report")
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return absPath, nil
}

func (g *ReportGenerator) render(rc models.ReportContext, utf8 bool) (out []byte, err error) {
	// битый TTF может уронить парсер gofpdf
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("render report: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Digital Readiness Report "+rc.SurveyCode, utf8)
	pdf.SetAuthor("Pirlanta", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	font := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if utf8 {
		g.addUTF8Font(pdf)
		font = g.fontName
		tr = func(s string) string { return s }
	}
	w := &writer{pdf: pdf, font: font, tr: tr}

	pdf.AddPage()

	if g.LogoPath != "" {
		if _, err := os.Stat(g.LogoPath); err == nil {
			pdf.ImageOptions(g.LogoPath, 20, 15, 35, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.SetY(35)
		}
	}

	// ===== Заголовок
	pdf.SetFont(font, "B", 20)
	pdf.CellFormat(0, 12, tr("Digital Readiness Report"), "", 1, "C", false, 0, "")
	pdf.SetFont(font, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Survey code %s  |  %s", rc.SurveyCode, rc.ReportDate)), "", 1, "C", false, 0, "")
	w.hr()
	pdf.Ln(3)

	// ===== Респондент
	w.sectionTitle("Prepared for")
	w.kvLine("Name", rc.FullName)
	if rc.CompanyName != "" {
		w.kvLine("Company", rc.CompanyName)
	}
	w.kvLine("Email", rc.Email)
	pdf.Ln(2)
	w.hr()

	// ===== Общий балл
	w.sectionTitle("Overall digital maturity")
	pdf.SetFont(font, "B", 28)
	pdf.CellFormat(0, 14, fmt.Sprintf("%d / 100", rc.Scores.Overall), "", 1, "C", false, 0, "")
	pdf.SetFont(font, "", 11)
	pdf.MultiCell(0, 6, tr(rc.ScoreMessage), "", "C", false)
	pdf.Ln(2)
	w.hr()

	// ===== Измерения
	w.sectionTitle("Score by dimension")
	w.scoreBar("Digital Customers", rc.Scores.Customers, rc.Scores.IndustryAverage)
	w.scoreBar("Digital Workplace", rc.Scores.Workplace, rc.Scores.IndustryAverage)
	w.scoreBar("Digital Operations", rc.Scores.Operations, rc.Scores.IndustryAverage)
	pdf.SetFont(font, "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Vertical mark: industry average (%d)", rc.Scores.IndustryAverage)), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	w.hr()

	// ===== Ready for next
	w.sectionTitle("Ready for what's next")
	pdf.SetFont(font, "", 11)
	for _, b := range assessment.ReadyForNextBenefits {
		pdf.MultiCell(0, 6, tr("- "+b.Text), "", "L", false)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(font, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s  -  %d/{nb}", rc.SurveyCode, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== helpers =====

type writer struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

func (w *writer) sectionTitle(s string) {
	w.pdf.SetFont(w.font, "B", 12)
	w.pdf.CellFormat(0, 7, w.tr(s), "", 1, "L", false, 0, "")
	w.pdf.SetFont(w.font, "", 11)
}

func (w *writer) kvLine(key, val string) {
	w.pdf.SetFont(w.font, "B", 11)
	w.pdf.CellFormat(35, 6, w.tr(key+":"), "", 0, "L", false, 0, "")
	w.pdf.SetFont(w.font, "", 11)
	w.pdf.CellFormat(0, 6, w.tr(val), "", 1, "L", false, 0, "")
}

func (w *writer) hr() {
	y := w.pdf.GetY() + 1.5
	w.pdf.SetLineWidth(0.2)
	w.pdf.Line(20, y, 190, y)
	w.pdf.SetY(y + 2)
}

// scoreBar: подпись, полоса 0..100 и отметка среднего по отрасли
func (w *writer) scoreBar(label string, score, avg int) {
	const (
		left     = 20.0
		labelW   = 50.0
		barW     = 100.0
		barH     = 6.0
		rowH     = 10.0
		valueGap = 4.0
	)
	y := w.pdf.GetY()

	w.pdf.SetFont(w.font, "", 11)
	w.pdf.SetXY(left, y)
	w.pdf.CellFormat(labelW, barH, w.tr(label), "", 0, "L", false, 0, "")

	x := left + labelW
	w.pdf.SetFillColor(230, 230, 230)
	w.pdf.Rect(x, y, barW, barH, "F")
	w.pdf.SetFillColor(36, 99, 235)
	w.pdf.Rect(x, y, barW*float64(score)/100, barH, "F")

	w.pdf.SetDrawColor(220, 38, 38)
	w.pdf.SetLineWidth(0.6)
	ax := x + barW*float64(avg)/100
	w.pdf.Line(ax, y-1, ax, y+barH+1)
	w.pdf.SetDrawColor(0, 0, 0)

	w.pdf.SetXY(x+barW+valueGap, y)
	w.pdf.CellFormat(0, barH, fmt.Sprintf("%d", score), "", 1, "L", false, 0, "")
	w.pdf.SetY(y + rowH)
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReportGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	// AddUTF8Font принимает путь до TTF
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
