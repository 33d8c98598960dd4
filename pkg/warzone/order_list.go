package warzone

import (
	"fmt"
	"strings"
)

// OrderList is a player's ordered collection of orders. Insertion order is
// issuance order; indices stay dense as orders are removed or moved.
type OrderList struct {
	orders []*Order
}

// NewOrderList returns an empty list.
func NewOrderList() *OrderList {
	return &OrderList{}
}

// Add appends an order. Nil orders are refused.
func (l *OrderList) Add(o *Order) bool {
	if o == nil {
		return false
	}
	l.orders = append(l.orders, o)
	return true
}

// Remove deletes the order at index i and compacts the list.
func (l *OrderList) Remove(i int) bool {
	if i < 0 || i >= len(l.orders) {
		return false
	}
	l.orders = append(l.orders[:i], l.orders[i+1:]...)
	return true
}

// Move relocates the order at from so that it ends up at index to. All other
// orders keep their relative order.
func (l *OrderList) Move(from, to int) bool {
	n := len(l.orders)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	o := l.orders[from]
	l.orders = append(l.orders[:from], l.orders[from+1:]...)
	l.orders = append(l.orders[:to], append([]*Order{o}, l.orders[to:]...)...)
	return true
}

// At returns the order at index i, or nil if i is out of range.
func (l *OrderList) At(i int) *Order {
	if i < 0 || i >= len(l.orders) {
		return nil
	}
	return l.orders[i]
}

// Len returns the number of orders in the list.
func (l *OrderList) Len() int {
	return len(l.orders)
}

// Orders returns a snapshot of the list. The orders themselves are shared.
func (l *OrderList) Orders() []*Order {
	out := make([]*Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Pending returns the number of orders that have not executed yet.
func (l *OrderList) Pending() int {
	n := 0
	for _, o := range l.orders {
		if !o.Executed() {
			n++
		}
	}
	return n
}

// ExecuteAll executes every pending order in stored order and returns how
// many were executed. Orders that already executed are skipped.
func (l *OrderList) ExecuteAll(b Board) int {
	n := 0
	for _, o := range l.orders {
		if o.Executed() {
			continue
		}
		o.Execute(b)
		n++
	}
	return n
}

// RemoveExecuted drops every executed order and returns how many were removed.
func (l *OrderList) RemoveExecuted() int {
	kept := l.orders[:0]
	for _, o := range l.orders {
		if !o.Executed() {
			kept = append(kept, o)
		}
	}
	removed := len(l.orders) - len(kept)
	clear(l.orders[len(kept):])
	l.orders = kept
	return removed
}

// Clone deep-copies the list; every order is cloned, none are shared.
func (l *OrderList) Clone() *OrderList {
	cp := &OrderList{orders: make([]*Order, len(l.orders))}
	for i, o := range l.orders {
		cp.orders[i] = o.Clone()
	}
	return cp
}

func (l *OrderList) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d orders", len(l.orders))
	for i, o := range l.orders {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, o)
	}
	return sb.String()
}
