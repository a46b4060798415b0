// Package model defines the stream offer entities (tariffs, stream, gifts,
// debug metadata, the request envelope) and the Event entity whose date is
// carried through a per-field codec.
//
// The entities are plain values. They are built by decoding wire text and
// are never mutated afterwards; encoders only read them. The wire mapping
// lives in schema.go.
package model

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// RequestType enumerates request outcomes. Only "success" is defined.
type RequestType string

const (
	RequestTypeSuccess RequestType = "success"
)

// PublicTariff is a priced, identified tariff offered on a stream.
type PublicTariff struct {
	ID    uint32
	Price uint32
	// Duration is carried on the wire as a human-readable span ("15m").
	Duration    time.Duration
	Description string
}

// PrivateTariff is a client-specific tariff scoped to its stream.
type PrivateTariff struct {
	ClientPrice uint32
	Duration    time.Duration
	Description string
}

// Stream describes one broadcast stream and its tariffs.
type Stream struct {
	UserID    uuid.UUID
	IsPrivate bool
	// Settings is an opaque flag set.
	Settings      uint32
	ShardURL      url.URL
	PublicTariff  PublicTariff
	PrivateTariff PrivateTariff
}

type Gift struct {
	ID          uint32
	Price       uint32
	Description string
}

// DebugInfo carries processing metadata.
type DebugInfo struct {
	Duration time.Duration
	At       time.Time
}

// Request is the stream offer record. Gifts keep wire order.
type Request struct {
	Type   RequestType
	Stream Stream
	Gifts  []Gift
	Debug  DebugInfo
}

// Event is a named, dated happening. Date holds the unprefixed value; on the
// wire it always reads "Date: <date>".
type Event struct {
	Name string
	Date string
}
