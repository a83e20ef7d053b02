package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/order"
)

// OrderHandler composes the WhatsApp hand-off for a confirmed order.
type OrderHandler struct {
	// Phone is the restaurant's WhatsApp number in international format.
	Phone string
}

func (h *OrderHandler) Message(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OrderMessageRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	o := order.Order{
		Type:    order.Type(req.Type),
		Payment: order.PaymentMethod(req.Payment),
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, order.Item{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	if req.Delivery != nil {
		o.Delivery = &order.Delivery{
			CEP:          req.Delivery.CEP,
			Street:       req.Delivery.Street,
			Number:       req.Delivery.Number,
			Complement:   req.Delivery.Complement,
			Neighborhood: req.Delivery.Neighborhood,
			City:         req.Delivery.City,
			Fee:          req.Delivery.Fee,
		}
	}
	if req.Pickup != nil {
		o.Pickup = &order.Pickup{Name: req.Pickup.Name, Time: req.Pickup.Time}
	}

	if err := o.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	msg := o.Message()
	writeJSON(w, r, http.StatusOK, dto.OrderMessageResponse{
		Total:       o.Total(),
		Message:     msg,
		WhatsAppURL: order.WhatsAppURL(h.Phone, msg),
	})
}
