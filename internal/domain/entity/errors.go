package entity

import (
	"errors"
	"fmt"
)

// UnsupportedChainError means a chain identifier has no registry
// configuration at all.
type UnsupportedChainError struct {
	ChainID string
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("unsupported chain %q: no configuration found", e.ChainID)
}

// NotImplementedError means a chain is configured but no connector
// implementation exists for its configured kind.
type NotImplementedError struct {
	ChainID string
	Kind    ConnectorKind
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("connector %q for chain %q is not implemented", e.Kind, e.ChainID)
}

// InvalidAddressError means an address failed the connector's format
// validation. It is raised before any network call is made.
type InvalidAddressError struct {
	ChainID string
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid %s address: %s", e.ChainID, e.Address)
}

// UpstreamFetchError wraps an RPC or pricing-API failure inside a connector
// or resolver operation.
type UpstreamFetchError struct {
	Op  string
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// Errors surfaced at the service shell, mapped to HTTP statuses by the API
// layer.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
