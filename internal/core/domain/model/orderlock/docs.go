// Package orderlock holds the application-level lock editors take on an order.
package orderlock
