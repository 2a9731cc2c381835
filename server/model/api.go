package model

import (
	"time"
)

// ApiResp is the envelope of every response. Time is in microseconds.
type ApiResp struct {
	Time  int64  `json:"time"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newApiResp() *ApiResp {
	return &ApiResp{Time: time.Now().UnixMicro()}
}

func NewApiErrorResp(err error) *ApiResp {
	return NewApiErrorStringResp(err.Error())
}

func NewApiErrorStringResp(err string) *ApiResp {
	r := newApiResp()
	r.Error = err
	return r
}

func NewApiDataResp(data any) *ApiResp {
	r := newApiResp()
	r.Data = data
	return r
}
