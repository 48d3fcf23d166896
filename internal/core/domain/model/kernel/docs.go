// Package kernel holds the value objects shared by every commerce aggregate:
// UUID identifiers, ISO currencies, scale-aware Money, and locales.
package kernel
