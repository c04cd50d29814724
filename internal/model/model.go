// Package model holds entity records of the remote data service and inputs to create or update them
package model

// Ptr returns pointer to v, handy for patch inputs
func Ptr[T any](v T) *T {
	return &v
}
