package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"finpro/internal/core"
)

// WriteTable renders the report as a terminal table for the CLI.
func WriteTable(w io.Writer, rep Report) {
	fmt.Fprintf(w, "FINPRO - Laporan Keuangan\n")
	fmt.Fprintf(w, "Periode: %s\n", rep.PeriodLabel)
	fmt.Fprintf(w, "Tanggal Cetak: %s\n\n", rep.GeneratedAt.Format("02/01/2006 15:04"))

	sum := table.NewWriter()
	sum.SetOutputMirror(w)
	sum.AppendHeader(table.Row{"Ringkasan", "Jumlah"})
	sum.AppendRows([]table.Row{
		{"Total Pemasukan", core.FormatRupiah(rep.Summary.Income)},
		{"Total Pengeluaran", core.FormatRupiah(rep.Summary.Expense)},
		{"Sisa Saldo", core.FormatRupiah(rep.Summary.Balance)},
		{"Jumlah Transaksi", rep.Summary.Count},
	})
	sum.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	sum.Render()

	fmt.Fprintln(w)

	det := table.NewWriter()
	det.SetOutputMirror(w)
	det.AppendHeader(table.Row{"Tanggal", "Kategori", "Catatan", "Masuk", "Keluar"})
	for _, row := range rep.Rows {
		det.AppendRow(table.Row{row.DateLabel, row.Category, row.Description, row.Income, row.Expense})
	}
	det.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	det.Render()
}
