package email

import (
	"fmt"
	"strings"

	"github.com/sneakhub/sneaker-shop-backend/internal/cart"
)

// OrderConfirmationHTML renders the payment-confirmed email body.
func OrderConfirmationHTML(orderNumber, firstName string, items []cart.Item, total float64) string {
	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s %s (US %.1f)</td><td>%d</td><td>&#8358;%.2f</td></tr>`,
			item.Brand, item.ProductType, item.SizeInfo.US, item.Quantity, item.TotalPrice))
	}

	return fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2>Thanks for your order, %s!</h2>
  <p>Your payment for order <strong>%s</strong> has been confirmed.</p>
  <table width="100%%" cellpadding="6" style="border-collapse:collapse">
    <tr><th align="left">Item</th><th align="left">Qty</th><th align="left">Amount</th></tr>
    %s
    <tr><td colspan="2"><strong>Total</strong></td><td><strong>&#8358;%.2f</strong></td></tr>
  </table>
  <p>We will let you know as soon as your sneakers ship.</p>
</div>`, firstName, orderNumber, rows.String(), total)
}
