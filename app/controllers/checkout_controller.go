package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"atelier/app/services"
)

// MaxOrderBytes caps the size of a checkout request body
const MaxOrderBytes = 1 << 20

// CheckoutController receives orders posted by the checkout page
type CheckoutController struct {
	orderService *services.OrderService
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(orderService *services.OrderService) *CheckoutController {
	return &CheckoutController{orderService: orderService}
}

// Submit answers {"ok", "message"}: 200 when stored, 400 when incomplete,
// 500 when the order could not be written.
func (cc *CheckoutController) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxOrderBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendJSON(w, http.StatusRequestEntityTooLarge, services.OrderResult{OK: false, Message: services.MsgOrderIncomplete})
			return
		}
		// An unreadable body is handled like an empty one.
		body = nil
	}

	result, err := cc.orderService.SubmitOrder(body)
	switch {
	case errors.Is(err, services.ErrInvalidOrder):
		sendJSON(w, http.StatusBadRequest, result)
	case err != nil:
		log.Printf("checkout: %v", err)
		sendJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	default:
		sendJSON(w, http.StatusOK, result)
	}
}
