package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderValidation(t *testing.T) {
	validItems := []LineItem{{ID: "1", Title: "X", Qty: "1", Price: "10"}}

	tests := []struct {
		name    string
		order   *Order
		wantErr bool
	}{
		{
			name: "valid order",
			order: &Order{
				Customer: Customer{Name: "A", Email: "a@a.com"},
				Items:    validItems,
				Total:    "10",
			},
			wantErr: false,
		},
		{
			name: "prices and quantities are not checked",
			order: &Order{
				Customer: Customer{Name: "A", Email: "a@a.com"},
				Items:    []LineItem{{ID: 1, Qty: "one", Price: "120,00"}},
				Total:    "",
			},
			wantErr: false,
		},
		{
			name: "phone is optional",
			order: &Order{
				Customer: Customer{Name: "A", Email: "a@a.com", Phone: "+55 11 99999-0000"},
				Items:    validItems,
			},
			wantErr: false,
		},
		{
			name: "missing name",
			order: &Order{
				Customer: Customer{Email: "a@a.com"},
				Items:    validItems,
			},
			wantErr: true,
		},
		{
			name: "missing email",
			order: &Order{
				Customer: Customer{Name: "A"},
				Items:    validItems,
			},
			wantErr: true,
		},
		{
			name: "no items",
			order: &Order{
				Customer: Customer{Name: "A", Email: "a@a.com"},
				Items:    []LineItem{},
			},
			wantErr: true,
		},
		{
			name:    "empty order",
			order:   &Order{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderItemCount(t *testing.T) {
	order := &Order{Items: []LineItem{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 2, order.ItemCount())
}
