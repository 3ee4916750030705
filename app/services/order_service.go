package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"atelier/app/models"
	"atelier/app/repositories"
)

const (
	MsgOrderAccepted   = "Pedido recebido! Entraremos em contato por e-mail."
	MsgOrderIncomplete = "Dados incompletos."
)

// ErrInvalidOrder is returned alongside a rejected OrderResult
var ErrInvalidOrder = errors.New("invalid order")

// OrderResult is the answer given to the customer
type OrderResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// OrderService handles checkout submissions
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// SubmitOrder validates a checkout payload and stores it exactly as sent.
// A rejected order yields a result together with ErrInvalidOrder; any other
// error means the order could not be stored.
func (s *OrderService) SubmitOrder(raw []byte) (*OrderResult, error) {
	doc, order := decodeOrder(raw)

	if err := order.Validate(); err != nil {
		return &OrderResult{OK: false, Message: MsgOrderIncomplete}, ErrInvalidOrder
	}

	record, err := s.orderRepo.Create(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	log.Printf("order %d accepted: %d items, total %v", record.Sequence, order.ItemCount(), order.Total)
	return &OrderResult{OK: true, Message: MsgOrderAccepted}, nil
}

// ListOrders retrieves the ledger entries of accepted orders
func (s *OrderService) ListOrders() ([]*models.OrderRecord, error) {
	return s.orderRepo.List()
}

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeOrder checks that raw holds a single JSON object and decodes it into
// the typed view used for validation. The returned document is raw itself,
// stored as sent. Anything that is not a lone JSON object decodes to an
// empty order. Fields of the wrong type are left empty in the typed view.
func decodeOrder(raw []byte) (json.RawMessage, *models.Order) {
	var fields map[string]json.RawMessage
	if err := decodeNumbers(raw, &fields); err != nil || fields == nil {
		return nil, &models.Order{}
	}

	order := &models.Order{}
	if err := decodeNumbers(raw, order); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, &models.Order{}
		}
	}
	return json.RawMessage(raw), order
}

func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}
