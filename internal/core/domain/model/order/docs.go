// Package order holds the Order aggregate: the order itself, its shipments and line items,
// payments, tax values and history events.
//
// Shipments come in three kinds (physical, electronic, service) expressed as a Kind tag on a
// single Shipment type. Every mutating method recomputes what depends on it before returning:
// allocating a line item re-derives the shipment allocation status, and shipping or cancelling a
// shipment re-derives the order status.
package order
