// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -source ../steamauth_iface.go -destination mock_steamauth/mock_steamauth_iface.go
