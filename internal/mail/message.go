// Package mail renders order confirmation emails and delivers them
// through an external HTTP mail transport, best effort.
package mail

import (
	"fmt"
	"strings"

	"github.com/wedsontavares/escribo-orders/internal/domain"
)

// Message is the rendered confirmation email, returned to the caller even
// when delivery is skipped or fails.
type Message struct {
	To      string `json:"-"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ComposeConfirmation builds the fixed plain-text confirmation for one
// order: greeting, short order number, status, localized date, one line
// per item and the grand total.
func ComposeConfirmation(order domain.CustomerOrder) Message {
	shortID := domain.ShortID(order.OrderID)

	var items strings.Builder
	for i, item := range order.Items {
		if i > 0 {
			items.WriteString("\n")
		}
		fmt.Fprintf(&items, "- %s (Qtd: %d) - R$ %s cada = R$ %s",
			item.ProductName,
			item.Quantity,
			domain.FormatCents(item.PriceCents),
			domain.FormatCents(item.LineTotalCents()),
		)
	}

	body := fmt.Sprintf(`Olá %s,

Seu pedido foi confirmado com sucesso!

Detalhes do Pedido:
- Número: #%s
- Status: %s
- Data: %s

Itens:
%s

Total: R$ %s

Obrigado pela sua compra!

Atenciosamente,
Equipe E-commerce`,
		order.CustomerName,
		shortID,
		order.Status,
		order.OrderDate.Format("02/01/2006"),
		items.String(),
		domain.FormatCents(order.TotalCents),
	)

	return Message{
		To:      order.Email,
		Subject: fmt.Sprintf("Confirmação do Pedido #%s", shortID),
		Body:    body,
	}
}
