// Package services implements the business rules on top of the
// repositories: input validation and normalization, lifecycle checks,
// session handling, and aggregation. This file centralizes the
// service-level error values so handlers can map them to HTTP results
// consistently.
//
// These errors cover the predictable cases; store failures pass through
// wrapped and are classified by the handler layer as query/write
// failures.
package services

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt does not
	// match a registered admin. There is no lockout or backoff on top.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession is returned when a session token is missing,
	// malformed, expired, or signed with the wrong key.
	ErrInvalidSession = errors.New("invalid session token")

	// ErrPartnerNotFound indicates the requested dealer or influencer
	// record does not exist.
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrOrderNotFound indicates the requested order does not exist in
	// the addressed channel.
	ErrOrderNotFound = errors.New("order not found")

	// ErrRewardNotFound indicates the requested catalog entry or history
	// row does not exist.
	ErrRewardNotFound = errors.New("reward not found")

	// ErrMissingName is returned when a record is created without a name.
	ErrMissingName = errors.New("name is required")

	// ErrInvalidPhone is returned when a partner phone number is not a
	// 10-digit number.
	ErrInvalidPhone = errors.New("phone number must be 10 digits")

	// ErrInvalidStatus is returned when a lifecycle status value is
	// outside the allowed set.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrInvalidChannel is returned when a request addresses an unknown
	// sales channel.
	ErrInvalidChannel = errors.New("unknown sales channel")

	// ErrInvalidQuantity is returned when an order or fulfillment
	// quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidRate is returned when an order rate or posted price is
	// not positive.
	ErrInvalidRate = errors.New("rate must be positive")

	// ErrInvalidPoints is returned when a reward point cost is not
	// positive.
	ErrInvalidPoints = errors.New("points must be positive")
)
