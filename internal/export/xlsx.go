// Package export renders persisted leases as spreadsheet downloads.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"leaseintake/internal/model"
)

// SheetName is the single worksheet in a lease export.
const SheetName = "Leases"

// Headers returns the export header row: file name, processed-at, then every flattened lease field.
func Headers() []string {
	cols := (model.LeaseRecord{}).Flatten()
	h := make([]string, 0, len(cols)+2)
	h = append(h, "File Name", "Processed At")
	for _, c := range cols {
		h = append(h, c.Label)
	}
	return h
}

// LeasesXLSX builds a workbook with one row per lease, in the order given.
func LeasesXLSX(project *model.Project, leases []model.LeaseDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, h := range Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	_ = f.SetRowStyle(SheetName, 1, 1, bold)

	for i, l := range leases {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, l.FileName)
		if !l.ProcessedAt.IsZero() {
			write(2, l.ProcessedAt.UTC().Format(time.RFC3339))
		}
		for j, c := range l.Lease.Flatten() {
			write(j+3, c.Value)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 32)
	_ = f.SetColWidth(SheetName, "B", "B", 22)
	last, _ := excelize.ColumnNumberToName(len(Headers()))
	_ = f.SetColWidth(SheetName, "C", last, 24)
	_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if project != nil {
		_ = f.SetDocProps(&excelize.DocProperties{Title: project.Name, Creator: "lease-intake"})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the download name for a project's export.
func FileName(project *model.Project) string {
	name := "leases"
	if project != nil && project.ID != "" {
		name = "leases-" + project.ID
	}
	return name + ".xlsx"
}
