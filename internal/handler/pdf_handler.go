package handler

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// PDFHandler отдает документ-акт о соблюдении правил экзамена.
// Содержимое фиксированное, параметров нет
type PDFHandler struct{}

// NewPDFHandler создает новый обработчик генерации PDF
func NewPDFHandler() *PDFHandler {
	return &PDFHandler{}
}

// Generate формирует PDF с фиксированным текстом акта на малайском языке.
// Размещение элементов по абсолютным координатам (мм, A4)
// GET /generatepdf
func (h *PDFHandler) Generate(c *gin.Context) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Заголовок документа
	pdf.SetFont("Arial", "B", 16)
	pdf.Text(60, 30, "SURAT AKUAN PEMATUHAN")

	pdf.SetFont("Arial", "", 12)
	pdf.Text(20, 50, "Saya dengan ini mengaku bahawa saya akan mematuhi semua peraturan")
	pdf.Text(20, 58, "dan syarat peperiksaan yang telah ditetapkan oleh pihak penganjur.")
	pdf.Text(20, 74, "Saya faham bahawa sebarang pelanggaran peraturan boleh menyebabkan")
	pdf.Text(20, 82, "keputusan peperiksaan saya dibatalkan.")

	pdf.Text(20, 120, "Tandatangan: ____________________")
	pdf.Text(20, 135, "Nama: ____________________")
	pdf.Text(20, 150, "Tarikh: ____________________")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("[PDFHandler] Ошибка генерации PDF: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
