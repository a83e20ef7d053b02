package order

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"delivery-fee-service/internal/domain"
)

type Type string

const (
	TypeDelivery Type = "delivery"
	TypePickup   Type = "pickup"
)

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCash   PaymentMethod = "dinheiro"
	PaymentDebit  PaymentMethod = "debito"
	PaymentCredit PaymentMethod = "credito"
)

// Card payments carry a per-unit surcharge; PIX and cash do not.
const (
	BasePrice       = 50.00
	DebitSurcharge  = 1.00
	CreditSurcharge = 2.50
)

var paymentLabels = map[PaymentMethod]string{
	PaymentPix:    "📲 PIX",
	PaymentCash:   "💵 Dinheiro",
	PaymentDebit:  "💳 Débito (+R$1,00)",
	PaymentCredit: "💳 Crédito (+R$2,50)",
}

// Item is one cart line: the product, how many, and its base unit price.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Delivery holds the customer address and the fee already resolved for it.
type Delivery struct {
	CEP          string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	Fee          float64
}

// Pickup holds who collects the order and when.
type Pickup struct {
	Name string
	Time string
}

// Order is one customer order ready to be handed off over WhatsApp.
// Nothing is persisted; the order lives only long enough to compose
// the message.
type Order struct {
	Type     Type
	Items    []Item
	Payment  PaymentMethod
	Delivery *Delivery
	Pickup   *Pickup
}

// UnitPrice applies the payment-method surcharge to a base unit price.
func UnitPrice(base float64, payment PaymentMethod) float64 {
	switch payment {
	case PaymentDebit:
		return base + DebitSurcharge
	case PaymentCredit:
		return base + CreditSurcharge
	default:
		return base
	}
}

// Total sums the surcharged item prices plus the delivery fee, if any.
func (o Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += UnitPrice(it.UnitPrice, o.Payment) * float64(it.Quantity)
	}
	if o.Type == TypeDelivery && o.Delivery != nil {
		total += o.Delivery.Fee
	}
	return total
}

// Validate checks the order is complete enough to compose a message.
func (o Order) Validate() error {
	if len(o.Items) == 0 {
		return errors.New("order: no items")
	}
	for _, it := range o.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("order: item %q has quantity %d", it.Name, it.Quantity)
		}
		if it.UnitPrice < 0 {
			return fmt.Errorf("order: item %q has negative price", it.Name)
		}
	}
	if _, ok := paymentLabels[o.Payment]; !ok {
		return fmt.Errorf("order: unknown payment method %q", o.Payment)
	}
	switch o.Type {
	case TypeDelivery:
		if o.Delivery == nil || o.Delivery.Street == "" || o.Delivery.Number == "" {
			return errors.New("order: delivery order needs street and number")
		}
	case TypePickup:
		if o.Pickup == nil || o.Pickup.Name == "" || o.Pickup.Time == "" {
			return errors.New("order: pickup order needs name and time")
		}
	default:
		return fmt.Errorf("order: unknown order type %q", o.Type)
	}
	return nil
}

// Message composes the WhatsApp order text the restaurant receives.
func (o Order) Message() string {
	var b strings.Builder

	b.WriteString("🍗 *NOVO PEDIDO — Casa do Frango Assado da 21*\n\n")
	b.WriteString("📋 *Itens:*\n")
	for _, it := range o.Items {
		line := UnitPrice(it.UnitPrice, o.Payment) * float64(it.Quantity)
		fmt.Fprintf(&b, "  • %dx %s — %s\n", it.Quantity, it.Name, FormatBRL(line))
	}
	b.WriteString("\n")

	if o.Type == TypePickup && o.Pickup != nil {
		b.WriteString("🏪 *Tipo:* RETIRADA\n")
		fmt.Fprintf(&b, "👤 *Nome:* %s\n", o.Pickup.Name)
		fmt.Fprintf(&b, "⏰ *Horário de retirada:* %s\n", o.Pickup.Time)
	} else if o.Delivery != nil {
		d := o.Delivery
		b.WriteString("🚚 *Tipo:* ENTREGA\n")
		addr := fmt.Sprintf("%s, %s", d.Street, d.Number)
		if d.Complement != "" {
			addr += fmt.Sprintf(" (%s)", d.Complement)
		}
		fmt.Fprintf(&b, "📍 *Endereço:* %s\n", addr)
		fmt.Fprintf(&b, "🏘️ *Bairro:* %s — %s\n", d.Neighborhood, d.City)
		fmt.Fprintf(&b, "📮 *CEP:* %s\n", domain.FormatCEP(d.CEP))
		fmt.Fprintf(&b, "🛵 *Taxa de entrega:* %s\n", FormatBRL(d.Fee))
	}

	fmt.Fprintf(&b, "\n💳 *Pagamento:* %s\n", paymentLabels[o.Payment])
	fmt.Fprintf(&b, "💰 *Total: %s*\n", FormatBRL(o.Total()))

	if o.Payment == PaymentPix && o.Type == TypePickup {
		b.WriteString("\n📲 *O cliente irá pagar via PIX antes de buscar.*")
	}

	return b.String()
}

// WhatsAppURL builds the wa.me deep link carrying the composed message.
func WhatsAppURL(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

// FormatBRL renders a value as Brazilian currency ("R$ 1.234,56").
func FormatBRL(v float64) string {
	cents := int64(math.Round(v * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	reais := strconv.FormatInt(cents/100, 10)
	var grouped strings.Builder
	for i, r := range reais {
		if i > 0 && (len(reais)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), cents%100)
}
