// Package models defines the client-side data shapes: the result envelope
// every networked operation returns, and the pass-through item records.
package models

import (
	"encoding/json"
	"errors"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

var (
	ErrFailedResult = errors.New("result is not successful")
	ErrNoData       = errors.New("result carries no data")
)

// Result is the uniform {status, data|detail} envelope.
// Data is meaningful only on success, Detail only on failure.
type Result struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Detail string          `json:"detail,omitempty"`
}

// Success wraps data (may be nil, as login returns no data).
func Success(data json.RawMessage) Result {
	return Result{Status: StatusSuccess, Data: data}
}

func Failure(detail string) Result {
	return Result{Status: StatusFailed, Detail: detail}
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Decode unmarshals Data into v.
func (r Result) Decode(v any) error {
	if !r.OK() {
		return ErrFailedResult
	}
	if len(r.Data) == 0 {
		return ErrNoData
	}
	return json.Unmarshal(r.Data, v)
}
