package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"finpro/internal/core"
)

// WriteXLSX renders the report as a spreadsheet: a header block, the summary
// table and the detailed two-column transaction list.
func WriteXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "FINPRO - Laporan Keuangan")
	f.SetCellValue(sheet, "A2", "Periode: "+rep.PeriodLabel)
	f.SetCellValue(sheet, "A3", "Tanggal Cetak: "+rep.GeneratedAt.Format("02/01/2006 15:04"))

	f.SetCellValue(sheet, "A5", "Ringkasan")
	f.SetCellValue(sheet, "B5", "Jumlah")
	f.SetCellValue(sheet, "A6", "Total Pemasukan")
	f.SetCellValue(sheet, "B6", core.FormatRupiah(rep.Summary.Income))
	f.SetCellValue(sheet, "A7", "Total Pengeluaran")
	f.SetCellValue(sheet, "B7", core.FormatRupiah(rep.Summary.Expense))
	f.SetCellValue(sheet, "A8", "Sisa Saldo")
	f.SetCellValue(sheet, "B8", core.FormatRupiah(rep.Summary.Balance))
	f.SetCellValue(sheet, "A9", "Jumlah Transaksi")
	f.SetCellValue(sheet, "B9", rep.Summary.Count)

	const headerRow = 11
	for col, name := range []string{"Tanggal", "Kategori", "Catatan", "Masuk", "Keluar"} {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, name)
	}

	for i, row := range rep.Rows {
		r := headerRow + 1 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.DateLabel)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Income)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Expense)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
