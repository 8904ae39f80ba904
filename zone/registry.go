// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zone resolves offset names from configuration to calendar.Offset
// values.
//
// A name is resolved by following the aliases of a Config, and then
// interpreting the result as "UTC", "Local", a numeric offset accepted by
// calendar.ParseOffset, or an IANA timezone name.
package zone

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"gonih.org/calendar"
	"gonih.org/calendar/internal/cache"
)

var (
	// ErrUnknownZone is returned for names that do not resolve.
	ErrUnknownZone = errors.New("zone: unknown zone")
	// ErrAliasCycle is returned for aliases that refer back to themselves.
	ErrAliasCycle = errors.New("zone: alias cycle")
)

// A Registry resolves names to Offsets. Successful resolutions are cached.
//
// It is safe for concurrent use.
type Registry struct {
	cfg   Config
	log   *zap.Logger
	load  func(name string) (*time.Location, error)
	clock calendar.Clock

	group singleflight.Group
	memo  cache.Cache[string, calendar.Offset]
}

// An Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithLoader replaces time.LoadLocation for IANA names.
func WithLoader(load func(name string) (*time.Location, error)) Option {
	return func(r *Registry) { r.load = load }
}

// WithClock sets the clock used by Now. The default is
// calendar.SystemClock.
func WithClock(c calendar.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// NewRegistry returns a Registry for cfg. cfg should have been validated.
func NewRegistry(cfg Config, opts ...Option) *Registry {
	r := &Registry{
		cfg:   cfg,
		log:   zap.NewNop(),
		load:  time.LoadLocation,
		clock: calendar.SystemClock,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Lookup resolves name. The empty name is the configured default.
func (r *Registry) Lookup(name string) (calendar.Offset, error) {
	if name == "" {
		name = r.defaultName()
	}
	return r.memo.GetErr(name, func(name string) (calendar.Offset, error) {
		// Collapse concurrent first lookups of the same name.
		v, err, _ := r.group.Do(name, func() (any, error) {
			return r.resolve(name)
		})
		if err != nil {
			return nil, err
		}
		return v.(calendar.Offset), nil
	})
}

// Default returns the configured default Offset. If it does not resolve, the
// failure is logged and UTC is returned.
func (r *Registry) Default() calendar.Offset {
	off, err := r.Lookup("")
	if err != nil {
		r.log.Warn("default zone does not resolve, using UTC",
			zap.String("zone", r.defaultName()),
			zap.Error(err))
		return calendar.UTC
	}
	return off
}

// Preload resolves the default and every alias concurrently, returning the
// first failure. It is meant to be called on startup, to reject
// configurations naming unknown zones early.
func (r *Registry) Preload(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	names := append([]string{r.defaultName()}, r.cfg.names()...)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.Lookup(name)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.log.Info("zones preloaded", zap.Int("count", r.memo.Len()))
	return nil
}

// Now returns the current Instant in the named zone.
func (r *Registry) Now(name string) (calendar.Instant, error) {
	off, err := r.Lookup(name)
	if err != nil {
		return calendar.Instant{}, err
	}
	return calendar.NowFrom(r.clock, off)
}

// Parse is calendar.Parse, reading value in the named zone unless the
// pattern contains %z.
func (r *Registry) Parse(pattern, value, name string) (calendar.Instant, error) {
	off, err := r.Lookup(name)
	if err != nil {
		return calendar.Instant{}, err
	}
	return calendar.Parse(pattern, value, off)
}

// Convert returns the moment of i read in the named zone.
func (r *Registry) Convert(i calendar.Instant, name string) (calendar.Instant, error) {
	off, err := r.Lookup(name)
	if err != nil {
		return calendar.Instant{}, err
	}
	return i.WithOffset(off)
}

func (r *Registry) defaultName() string {
	if r.cfg.Default == "" {
		return "Local"
	}
	return r.cfg.Default
}

// resolve follows aliases and interprets the resulting name.
func (r *Registry) resolve(name string) (calendar.Offset, error) {
	target, err := r.cfg.resolveAlias(name)
	var off calendar.Offset
	switch {
	case err != nil:
		// wrapped below
	case target == "UTC" || target == "Z":
		off = calendar.UTC
	case target == "Local":
		off = calendar.Local
	case strings.HasPrefix(target, "+") || strings.HasPrefix(target, "-"):
		off, err = calendar.ParseOffset(target)
	default:
		var loc *time.Location
		if loc, err = r.load(target); err == nil {
			off = calendar.ZoneOffset(loc)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownZone, name, err)
	}
	r.log.Debug("zone resolved",
		zap.String("name", name),
		zap.String("target", target),
		zap.String("offset", off.Name()))
	return off, nil
}
