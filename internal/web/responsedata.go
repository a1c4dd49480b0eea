package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	code   int
	Errors []string `json:"errors"`
}

func newErrorResponse(code int, err error) errorResponse {
	r := errorResponse{code: code}
	for _, err := range unwrap(err) {
		r.Errors = append(r.Errors, err.Error())
	}
	return r
}

func (r errorResponse) send(ctx *fiber.Ctx) error {
	return ctx.Status(r.code).JSON(r)
}

type multierr interface {
	Unwrap() []error
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, err := range merr.Unwrap() {
			errs = append(errs, unwrap(err)...)
		}
		return errs
	}
	return []error{err}
}
