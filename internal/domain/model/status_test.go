package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to accepted", OrderStatusPending, OrderStatusAccepted, true},
		{"pending to rejected", OrderStatusPending, OrderStatusRejected, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to completed skips accepted", OrderStatusPending, OrderStatusCompleted, false},
		{"accepted to completed", OrderStatusAccepted, OrderStatusCompleted, true},
		{"accepted to cancelled", OrderStatusAccepted, OrderStatusCancelled, false},
		{"completed is terminal", OrderStatusCompleted, OrderStatusPending, false},
		{"rejected is terminal", OrderStatusRejected, OrderStatusAccepted, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderStatus_TransitionAllowedFor(t *testing.T) {
	//キャンセルは顧客だけ、それ以外は農家だけ
	assert.True(t, OrderStatusPending.TransitionAllowedFor(OrderStatusCancelled, RoleCustomer))
	assert.False(t, OrderStatusPending.TransitionAllowedFor(OrderStatusCancelled, RoleFarmer))
	assert.True(t, OrderStatusPending.TransitionAllowedFor(OrderStatusAccepted, RoleFarmer))
	assert.False(t, OrderStatusPending.TransitionAllowedFor(OrderStatusAccepted, RoleCustomer))
	assert.True(t, OrderStatusAccepted.TransitionAllowedFor(OrderStatusCompleted, RoleFarmer))
	assert.False(t, OrderStatusAccepted.TransitionAllowedFor(OrderStatusCompleted, RoleCustomer))
}

func TestNegotiationStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from NegotiationStatus
		to   NegotiationStatus
		want bool
	}{
		{"pending to accepted", NegotiationStatusPending, NegotiationStatusAccepted, true},
		{"pending to rejected", NegotiationStatusPending, NegotiationStatusRejected, true},
		{"pending to countered", NegotiationStatusPending, NegotiationStatusCountered, true},
		{"pending to pending", NegotiationStatusPending, NegotiationStatusPending, false},
		{"accepted is terminal", NegotiationStatusAccepted, NegotiationStatusRejected, false},
		{"rejected is terminal", NegotiationStatusRejected, NegotiationStatusPending, false},
		{"countered is terminal", NegotiationStatusCountered, NegotiationStatusAccepted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, NegotiationStatusCountered.Valid())
	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, NegotiationStatus("").Valid())
	assert.True(t, RoleFarmer.Valid())
	assert.False(t, Role("ADMIN").Valid())
}
