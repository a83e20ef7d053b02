package order

import (
	"strings"
	"testing"
)

func deliveryOrder() Order {
	return Order{
		Type:    TypeDelivery,
		Payment: PaymentPix,
		Items:   []Item{{Name: "Frango Assado", Quantity: 2, UnitPrice: BasePrice}},
		Delivery: &Delivery{
			CEP:          "79331000",
			Street:       "R. Dom Pedro I",
			Number:       "100",
			Neighborhood: "Centro",
			City:         "Corumbá",
			Fee:          8.50,
		},
	}
}

func TestOrderTotal(t *testing.T) {
	cases := []struct {
		payment PaymentMethod
		want    float64
	}{
		{PaymentPix, 2*50.00 + 8.50},
		{PaymentCash, 2*50.00 + 8.50},
		{PaymentDebit, 2*51.00 + 8.50},
		{PaymentCredit, 2*52.50 + 8.50},
	}

	for _, c := range cases {
		o := deliveryOrder()
		o.Payment = c.payment
		if got := o.Total(); got != c.want {
			t.Errorf("Total(%s) = %.2f, want %.2f", c.payment, got, c.want)
		}
	}
}

func TestOrderTotalPickupHasNoFee(t *testing.T) {
	o := Order{
		Type:    TypePickup,
		Payment: PaymentPix,
		Items:   []Item{{Name: "Frango Assado", Quantity: 1, UnitPrice: BasePrice}},
		Pickup:  &Pickup{Name: "Ana", Time: "12:30"},
	}
	if got := o.Total(); got != 50.00 {
		t.Errorf("Total() = %.2f, want 50.00", got)
	}
}

func TestOrderValidate(t *testing.T) {
	if err := deliveryOrder().Validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	bad := deliveryOrder()
	bad.Items = nil
	if err := bad.Validate(); err == nil {
		t.Error("empty order accepted")
	}

	bad = deliveryOrder()
	bad.Payment = "cheque"
	if err := bad.Validate(); err == nil {
		t.Error("unknown payment accepted")
	}

	bad = deliveryOrder()
	bad.Delivery.Number = ""
	if err := bad.Validate(); err == nil {
		t.Error("delivery without number accepted")
	}

	bad = Order{Type: TypePickup, Payment: PaymentPix, Items: deliveryOrder().Items}
	if err := bad.Validate(); err == nil {
		t.Error("pickup without details accepted")
	}
}

func TestOrderMessageDelivery(t *testing.T) {
	msg := deliveryOrder().Message()

	for _, want := range []string{
		"NOVO PEDIDO",
		"ENTREGA",
		"R. Dom Pedro I, 100",
		"Centro — Corumbá",
		"79331-000",
		"Taxa de entrega:* R$ 8,50",
		"Total: R$ 108,50",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestOrderMessagePickupPixNote(t *testing.T) {
	o := Order{
		Type:    TypePickup,
		Payment: PaymentPix,
		Items:   []Item{{Name: "Frango Assado", Quantity: 1, UnitPrice: BasePrice}},
		Pickup:  &Pickup{Name: "Ana", Time: "12:30"},
	}
	msg := o.Message()

	if !strings.Contains(msg, "RETIRADA") {
		t.Error("pickup message missing RETIRADA")
	}
	if !strings.Contains(msg, "pagar via PIX antes de buscar") {
		t.Error("pickup+pix message missing the PIX note")
	}
}

func TestWhatsAppURL(t *testing.T) {
	url := WhatsAppURL("5511999999999", "pedido: 2x frango")

	if !strings.HasPrefix(url, "https://wa.me/5511999999999?text=") {
		t.Fatalf("unexpected url %q", url)
	}
	if strings.ContainsAny(strings.TrimPrefix(url, "https://wa.me/5511999999999?text="), " :") {
		t.Errorf("message not escaped in %q", url)
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "R$ 0,00"},
		{8.5, "R$ 8,50"},
		{108.5, "R$ 108,50"},
		{1234.56, "R$ 1.234,56"},
		{-7, "-R$ 7,00"},
	}
	for _, c := range cases {
		if got := FormatBRL(c.v); got != c.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
