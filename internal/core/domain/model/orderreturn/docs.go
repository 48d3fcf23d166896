// Package orderreturn models returns and exchanges of shipped goods: requested and received
// quantities per line, refund totals, and the return status that follows what was received.
package orderreturn
