// Package whatsapp builds the plain-text order summary and wa.me deep link
// the storefront opens after checkout.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"dapur-manis/internal/model"
)

// Builder renders order messages for the shop's WhatsApp number.
type Builder struct {
	phone string
}

// NewBuilder creates a message builder. An empty phone disables deep links.
func NewBuilder(phone string) *Builder {
	return &Builder{phone: strings.TrimLeft(phone, "+")}
}

// Message renders the order summary handed to the shop over WhatsApp.
func (b *Builder) Message(order *model.OrderResponse) string {
	var sb strings.Builder

	sb.WriteString("*PESANAN BARU*\n")
	fmt.Fprintf(&sb, "No. Pesanan: %s\n\n", order.OrderNumber)

	if order.POSession != nil {
		fmt.Fprintf(&sb, "Pre-Order: %s\n\n", order.POSession.Name)
	}

	sb.WriteString("*DATA PELANGGAN*\n")
	fmt.Fprintf(&sb, "Nama: %s\n", order.CustomerName)
	fmt.Fprintf(&sb, "Telepon: %s\n", order.CustomerPhone)
	fmt.Fprintf(&sb, "Alamat: %s\n", order.CustomerAddress)
	if order.Notes != nil && *order.Notes != "" {
		fmt.Fprintf(&sb, "Catatan: %s\n", *order.Notes)
	}
	sb.WriteString("\n*DETAIL PESANAN*\n")

	for i, item := range order.Items {
		fmt.Fprintf(&sb, "%d. %s\n   %dx @ Rp%s = Rp%s\n",
			i+1, item.ProductName, item.Quantity,
			item.Price.StringFixed(0), item.Subtotal.StringFixed(0))
	}

	fmt.Fprintf(&sb, "\n*TOTAL: Rp%s*\n", order.TotalAmount.StringFixed(0))

	return sb.String()
}

// DeepLink returns the wa.me URL that opens a chat with the shop prefilled
// with the order message. Empty when no shop phone is configured.
func (b *Builder) DeepLink(order *model.OrderResponse) string {
	if b.phone == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.phone, url.QueryEscape(b.Message(order)))
}
