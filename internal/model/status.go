package model

// OrderStatus is the lifecycle status of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderReady      OrderStatus = "READY"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is possible from s.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// orderTransitions is the forward-only order state machine. CANCELLED is
// reachable from every non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderReady, OrderCancelled},
	OrderReady:      {OrderCompleted, OrderCancelled},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DeletableStatuses are the order statuses that permit deletion.
func (s OrderStatus) Deletable() bool {
	return s == OrderPending || s == OrderCancelled
}

// RevenueStatuses are the statuses counted as realised revenue: confirmed or
// further along the fulfilment flow.
var RevenueStatuses = []OrderStatus{OrderConfirmed, OrderProcessing, OrderReady, OrderCompleted}
