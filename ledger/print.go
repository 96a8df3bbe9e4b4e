package ledger

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"flexwage/apperr"
	"flexwage/utils"
)

// PrintWorkerDID renders the credential document as a PDF with a QR code of
// its signature, for workers carrying their record off-platform.
func (h *Handler) PrintWorkerDID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	workerID := ps.ByName("workerId")

	doc, err := h.svc.GetCredential(r.Context(), workerID)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}

	qrPayload := fmt.Sprintf("%s|%d|%s", doc.WorkerID, doc.TotalShifts, doc.Signature)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Verified Work Credential")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Worker ID: %s", doc.WorkerID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Total shifts completed: %d", doc.TotalShifts))
	pdf.Ln(8)
	if doc.AverageRating != nil {
		pdf.Cell(0, 10, fmt.Sprintf("Average rating: %.1f / 5", *doc.AverageRating))
	} else {
		pdf.Cell(0, 10, "Average rating: unrated")
	}
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Ratings on record: %d", len(doc.Ratings)))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{
		ImageType: "PNG",
	}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=credential-"+workerID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
