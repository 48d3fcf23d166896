// Package inventory translates order lifecycle events into stock commands and applies them
// to per-warehouse Stock records.
//
// Event translation:
//
//	ORDER_PLACED, ORDER_ADJUSTMENT_ADDSKU          -> STOCK_ALLOCATE
//	ORDER_ADJUSTMENT_CHANGEQTY                     -> STOCK_ALLOCATE (delta >= 0) / STOCK_DEALLOCATE
//	ORDER_CANCELLATION, ORDER_ADJUSTMENT_REMOVESKU -> STOCK_DEALLOCATE
//	SHIPMENT_COMPLETED                             -> STOCK_RELEASE
package inventory
