package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/fsdevblog/geolink/internal/geo"
	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/services"
)

var errUsage = errors.New("usage: linkctl <create|show|delete|restore|ban|unban|events|stats> [flags] [code]")

// LinkAdmin административные операции над ссылками.
type LinkAdmin interface {
	Create(ctx context.Context, params services.CreateLinkParams) (*models.Link, error)
	Get(ctx context.Context, code string) (*models.Link, error)
	SoftDelete(ctx context.Context, code string) (*models.Link, error)
	Restore(ctx context.Context, code string) (*models.Link, error)
	Ban(ctx context.Context, code string) (*models.Link, error)
	Unban(ctx context.Context, code string) (*models.Link, error)
	Events(ctx context.Context, code string, limit int) ([]models.AccessEvent, error)
	Stats(ctx context.Context, code string) (*services.OutcomeStats, error)
	TotalStats(ctx context.Context) (*services.OutcomeStats, error)
}

// run выполняет подкоманду и печатает результат в JSON.
func run(ctx context.Context, admin LinkAdmin, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	var (
		result any
		err    error
	)
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "create":
		result, err = runCreate(ctx, admin, rest)
	case "events":
		result, err = runEvents(ctx, admin, rest)
	case "stats":
		result, err = runStats(ctx, admin, rest)
	case "show", "delete", "restore", "ban", "unban":
		code, codeErr := singleCode(rest)
		if codeErr != nil {
			return codeErr
		}
		result, err = flagCommand(cmd, admin)(ctx, code)
	default:
		return errUsage
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result) //nolint:wrapcheck
}

func flagCommand(cmd string, admin LinkAdmin) func(context.Context, string) (*models.Link, error) {
	switch cmd {
	case "delete":
		return admin.SoftDelete
	case "restore":
		return admin.Restore
	case "ban":
		return admin.Ban
	case "unban":
		return admin.Unban
	default:
		return admin.Get
	}
}

func singleCode(args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", errUsage
	}
	return args[0], nil
}

func runCreate(ctx context.Context, admin LinkAdmin, args []string) (*models.Link, error) {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	code := fs.String("code", "", "custom short code")
	target := fs.String("url", "", "target url")
	title := fs.String("title", "", "link title")
	lat := fs.Float64("lat", 0, "geofence center latitude")
	lng := fs.Float64("lng", 0, "geofence center longitude")
	radius := fs.Float64("radius", 0, "geofence radius in meters")
	location := fs.String("location", "", "location name")
	contact := fs.String("contact", "", "contact shown on denial")
	expires := fs.String("expires", "", "expiry time, RFC3339")
	maxAccess := fs.Int64("max", -1, "max successful accesses, -1 for unlimited")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	params := services.CreateLinkParams{
		ShortCode:    *code,
		TargetURL:    *target,
		Title:        optString(*title),
		Center:       geo.Point{Lat: *lat, Lng: *lng},
		RadiusMeters: *radius,
		LocationName: optString(*location),
		Contact:      optString(*contact),
	}
	if *expires != "" {
		at, err := time.Parse(time.RFC3339, *expires)
		if err != nil {
			return nil, fmt.Errorf("parse expires: %w", err)
		}
		params.ExpiresAt = &at
	}
	if *maxAccess >= 0 {
		params.MaxAccessCount = maxAccess
	}
	return admin.Create(ctx, params) //nolint:wrapcheck
}

func runEvents(ctx context.Context, admin LinkAdmin, args []string) ([]models.AccessEvent, error) {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", 0, "max events to print")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	code, err := singleCode(fs.Args())
	if err != nil {
		return nil, err
	}
	return admin.Events(ctx, code, *limit) //nolint:wrapcheck
}

// runStats без кода печатает сводку по всем ссылкам.
func runStats(ctx context.Context, admin LinkAdmin, args []string) (*services.OutcomeStats, error) {
	switch len(args) {
	case 0:
		return admin.TotalStats(ctx) //nolint:wrapcheck
	case 1:
		return admin.Stats(ctx, args[0]) //nolint:wrapcheck
	default:
		return nil, errUsage
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
