// Package baseline removes slow drift from signals by fitting a
// polynomial trend over a reference window and subtracting it.
package baseline
