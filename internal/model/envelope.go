package model

import (
	"bytes"
	"encoding/json"
)

// Envelope wraps the payload of a service operation. It either holds a value
// (Found) or holds nothing (Empty). The zero value is Empty.
//
// Presence is the only signal consumers read: callers never look inside the
// payload to decide between success and not-found.
type Envelope[T any] struct {
	data    T
	present bool
}

// Found returns an envelope carrying v.
func Found[T any](v T) Envelope[T] {
	return Envelope[T]{data: v, present: true}
}

// Empty returns an envelope without payload.
func Empty[T any]() Envelope[T] {
	return Envelope[T]{}
}

// Get returns the payload and whether it is present.
func (e Envelope[T]) Get() (T, bool) {
	return e.data, e.present
}

// Present reports whether the envelope carries a payload.
func (e Envelope[T]) Present() bool {
	return e.present
}

type envelopeJSON[T any] struct {
	Data    *T   `json:"data"`
	Success bool `json:"success"`
}

// MarshalJSON renders {"data": <payload|null>, "success": <present>}.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	out := envelopeJSON[T]{Success: e.present}
	if e.present {
		out.Data = &e.data
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON. A payload is present when
// success is true or data is non-null.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data    json.RawMessage `json:"data"`
		Success bool            `json:"success"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	hasData := len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null"))
	if !raw.Success && !hasData {
		*e = Empty[T]()
		return nil
	}

	var v T
	if hasData {
		if err := json.Unmarshal(raw.Data, &v); err != nil {
			return err
		}
	}
	*e = Found(v)
	return nil
}
