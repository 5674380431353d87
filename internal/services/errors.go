// Package services defines the business logic for the visit workflow: record
// creation, intake structuring, video room provisioning, post-visit
// summarization, and pharmacy order placement.
//
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers. Translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrVisitNotFound indicates that the requested visit does not exist.
	// It is the only stage error a client ever sees; upstream provider
	// failures degrade to stub results instead of erroring.
	ErrVisitNotFound = errors.New("visit not found")
)
