package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"collegeaccounts_backend/internals/features/finance/exam_fees/model"
	"collegeaccounts_backend/internals/features/finance/exam_fees/repository"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"

	exportSheet = "Exam Fees"
)

var exportHeaders = []string{
	"Year",
	"Category",
	"Exam Name",
	"This College Students",
	"This College Rate",
	"Other College Students",
	"Other College Rate",
	"Income",
	"Management Expense",
	"Distributable",
	"Govt Treasury %",
	"Govt Treasury",
	"Teachers Council %",
	"Teachers Council",
	"Staff/Invigilators %",
	"Staff/Invigilators",
	"Admin Committee %",
	"Admin Committee",
	"Total Expenses",
	"Date Added",
}

// exportRow: urutan kolom sama dengan exportHeaders.
func exportRow(m model.ExamFee) []any {
	d := m.ExamFeeDistribution.Data()
	return []any{
		m.ExamFeeYear,
		m.ExamFeeCategory,
		m.ExamFeeName,
		m.ExamFeeThisCollegeCount,
		m.ExamFeeThisCollegeRate.InexactFloat64(),
		m.ExamFeeOtherCollegeCount,
		m.ExamFeeOtherCollegeRate.InexactFloat64(),
		m.ExamFeeTotalIncome.Round(2).InexactFloat64(),
		m.ExamFeeManagementExpense.Round(2).InexactFloat64(),
		m.ExamFeeDistributableFund.Round(2).InexactFloat64(),
		d.GovtTreasury.Percent.InexactFloat64(),
		d.GovtTreasury.Amount.InexactFloat64(),
		d.TeachersCouncil.Percent.InexactFloat64(),
		d.TeachersCouncil.Amount.InexactFloat64(),
		d.StaffInvigilators.Percent.InexactFloat64(),
		d.StaffInvigilators.Amount.InexactFloat64(),
		d.AdminCommittee.Percent.InexactFloat64(),
		d.AdminCommittee.Amount.InexactFloat64(),
		m.ExamFeeTotalExpenses.Round(2).InexactFloat64(),
		m.ExamFeeCreatedAt.Format("2006-01-02"),
	}
}

// Export menulis semua baris aktif yang cocok dengan filter (tanpa paging).
func (s *ExamFeeService) Export(ctx context.Context, f repository.ListFilter, format string, w io.Writer) error {
	f.Params.PerPage = 0
	rows, _, err := s.List(ctx, f)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		return writeXLSX(rows, w)
	case FormatCSV:
		return writeCSV(rows, w)
	default:
		return domainerr.Newf(domainerr.InvalidFieldValue, "format", "unsupported export format %q", format)
	}
}

func writeXLSX(rows []model.ExamFee, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return err
		}
	}
	for r, m := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		values := exportRow(m)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}
	return f.Write(w)
}

// csvText: teks bebas yang diawali karakter formula diberi prefix ' supaya
// spreadsheet membacanya sebagai teks. Angka tidak lewat sini.
func csvText(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func writeCSV(rows []model.ExamFee, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, m := range rows {
		values := exportRow(m)
		record := make([]string, len(values))
		for i, v := range values {
			switch t := v.(type) {
			case float64:
				record[i] = strconv.FormatFloat(t, 'f', -1, 64)
			default:
				record[i] = csvText(fmt.Sprint(t))
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
