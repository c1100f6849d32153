package http

import (
	"actiowatch/internal/transport/http/request"
	"actiowatch/internal/transport/http/response"
	"actiowatch/internal/transport/http/validator"
)

// base bundles what every handler needs to read a request and answer it.
type base struct {
	decoder   request.RequestDecoder
	writer    response.ResponseWriter
	validator validator.Validator
}

func newBase(writer response.ResponseWriter) base {
	return base{
		decoder:   request.NewJSONDecoder(),
		writer:    writer,
		validator: validator.NewValidator(),
	}
}
