package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	dbmodels "refdesk-backend/models/db"
)

// GenerateSubmissionReceipt renders a printable summary of one submission:
// the template title, the submitting user and every field with its value.
func GenerateSubmissionReceipt(template dbmodels.Template, submission dbmodels.Submission, submitterName string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateSubmissionReceipt panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.CellFormat(0, 10, template.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Submitted by: "+submitterName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Submitted at: "+submission.CreatedAt.Format("02.01.2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 8, "Field", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Value", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, field := range template.Fields.Fields {
		value := ""
		if v, ok := submission.Data[field.ID]; ok {
			value = fmt.Sprintf("%v", v)
		}
		pdf.CellFormat(80, 8, field.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, value, "1", 1, "L", false, 0, "")
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, errors.Wrap(err, "failed to render pdf")
	}
	return buf.Bytes(), nil
}
