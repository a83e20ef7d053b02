package dto

type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderDelivery struct {
	CEP          string  `json:"cep"`
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   string  `json:"complement"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	Fee          float64 `json:"fee"`
}

type OrderPickup struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type OrderMessageRequest struct {
	Type     string         `json:"type"`
	Payment  string         `json:"payment"`
	Items    []OrderItem    `json:"items"`
	Delivery *OrderDelivery `json:"delivery"`
	Pickup   *OrderPickup   `json:"pickup"`
}

type OrderMessageResponse struct {
	Total       float64 `json:"total"`
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsapp_url"`
}
