// Package catalog models the product skus that order line items reference, together with
// the AvailabilityCriteria rules that decide how much of a requested quantity may be allocated
// against on-hand, pre-order or back-order inventory.
//
// Allocation rules never touch storage directly; they consult an InventoryManagement
// implementation supplied by the caller.
package catalog
