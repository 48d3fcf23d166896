// Package services provides domain services for rules that span more than one aggregate.
//
// The package includes:
//   - InventoryAllocator: applies the availability rules of each product sku to the open
//     lines of an order and produces the inventory commands that follow from it
//   - OrderLockValidator: decides whether an edited order may be saved under a lock
//
// Services are stateless; repositories and transactions stay in the application layer.
package services
