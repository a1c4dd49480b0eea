package web

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goserg/jassrating/internal/rebuild"
)

type rebuildRequest struct {
	confirm bool
	dryRun  bool
}

func (r rebuildRequest) options() rebuild.Options {
	return rebuild.Options{
		DryRun:  r.dryRun,
		Confirm: r.confirm,
	}
}

func parseRebuildRequest(ctx *fiber.Ctx) (rebuildRequest, error) {
	var err error
	confirm, cerr := parseFlag("confirm", ctx.Query("confirm"))
	err = errors.Join(err, cerr)
	dryRun, derr := parseFlag("dry_run", ctx.Query("dry_run"))
	err = errors.Join(err, derr)
	if err == nil && confirm && dryRun {
		err = errors.New("confirm and dry_run are mutually exclusive")
	}
	if err != nil {
		return rebuildRequest{}, err
	}
	return rebuildRequest{
		confirm: confirm,
		dryRun:  dryRun,
	}, nil
}

func parseFlag(name string, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", name, value)
	}
	return b, nil
}
