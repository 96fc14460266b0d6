package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	dbmodels "refdesk-backend/models/db"
)

type Provider interface {
	ExportReferenceList(list []dbmodels.Reference) (*bytes.Buffer, error)
	ExportSubmissionList(template dbmodels.Template, list []dbmodels.Submission) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var referenceHeaders = []string{"Reference No", "Subject", "Kind", "Status", "Priority", "Held by", "Created by", "Due date", "Created"}

func (i impl) ExportReferenceList(list []dbmodels.Reference) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, referenceHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		row, err = writeReferenceData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data")
		}
	}
	f.SetSheetName(sheet, "References")
	return f.WriteToBuffer()
}

func writeReferenceData(f *excelize.File, sheet string, list []dbmodels.Reference, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(referenceHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, item.RefNumber); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Subject); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Kind)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Priority)); err != nil {
			return row, err
		}

		col++
		if item.Holder != nil {
			if err := writeColumn(f, sheet, col, row, item.Holder.GetFullName()); err != nil {
				return row, err
			}
		}

		col++
		if item.Creator != nil {
			if err := writeColumn(f, sheet, col, row, item.Creator.GetFullName()); err != nil {
				return row, err
			}
		}

		col++
		if item.DueDate != nil {
			if err := writeColumn(f, sheet, col, row, item.DueDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}
	}
	return row, nil
}

func (i impl) ExportSubmissionList(template dbmodels.Template, list []dbmodels.Submission) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	headers := []string{"Submitted by", "Submitted at"}
	for _, field := range template.Fields.Fields {
		headers = append(headers, field.Label)
	}
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		if err := applyDataCellStyle(f, sheet, 1, row+1, len(headers), len(list)+1); err != nil {
			return nil, errors.Wrap(err, "failed to style xlsx data")
		}
		for _, item := range list {
			row++
			col := 1
			if err := writeColumn(f, sheet, col, row, item.SubmittedBy); err != nil {
				return nil, err
			}
			col++
			if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
				return nil, err
			}
			for _, field := range template.Fields.Fields {
				col++
				value, ok := item.Data[field.ID]
				if !ok {
					continue
				}
				if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%v", value)); err != nil {
					return nil, err
				}
			}
		}
	}
	f.SetSheetName(sheet, "Submissions")
	return f.WriteToBuffer()
}
