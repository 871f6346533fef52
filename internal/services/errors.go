package services

import "github.com/pkg/errors"

var (
	// ErrNoURLs is returned when a batch is submitted with an empty URL list.
	ErrNoURLs = errors.New("no URLs provided")

	// ErrSessionNotFound is returned for status or result queries against an
	// unknown session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyResult marks an overview fetch that returned nothing usable.
	ErrEmptyResult = errors.New("scrape returned no usable data")
)
