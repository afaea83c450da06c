// Package advisor is the AI advice collaborator: it takes a bounded recent
// slice of the user's transactions and asks a chat-completion model for a
// short financial analysis. Advice is always best-effort; the rest of the
// application treats its absence as a normal state.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finpro/internal/core"
)

// Advisor is the outbound port. Implementations must be safe to call with an
// empty slice and should honor ctx cancellation.
type Advisor interface {
	Analyze(ctx context.Context, txs []core.Transaction) (string, error)
}

// wireTransaction is the compact JSON shape sent to the model. Amounts stay
// in whole rupiah.
type wireTransaction struct {
	Date        string `json:"date"`
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// BuildPrompt serializes the transactions and wraps them in the Indonesian
// advisory prompt. The caller is expected to pass an already bounded slice
// (core.RecentTransactions) so the payload stays reasonably sized.
func BuildPrompt(txs []core.Transaction) (string, error) {
	wire := make([]wireTransaction, 0, len(txs))
	for _, tx := range txs {
		wire = append(wire, wireTransaction{
			Date:        tx.Date.Format(time.RFC3339),
			Amount:      tx.Amount.Units,
			Type:        string(tx.Type),
			Category:    tx.Category,
			Description: tx.Description,
		})
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}

	return fmt.Sprintf(`Bertindaklah sebagai penasihat keuangan pribadi yang profesional namun ramah untuk aplikasi bernama FINPRO.

Berikut adalah data transaksi terbaru pengguna dalam format JSON:
%s

Tolong berikan analisis singkat dalam format Markdown yang mencakup:
1. Ringkasan kondisi keuangan saat ini (Pemasukan vs Pengeluaran).
2. Kategori pengeluaran terbesar.
3. Saran praktis untuk penghematan atau pengelolaan uang yang lebih baik berdasarkan data tersebut.
4. Nada bicara yang memotivasi.

Gunakan Bahasa Indonesia yang baik dan benar.`, data), nil
}
