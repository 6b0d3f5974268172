// /home/krylon/go/src/github.com/blicero/spesen/scheduler/daily.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 21:30:09 krylon>

package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Daily is a recurring point in time, given as a standard five-field cron
// expression, e.g. "0 9 * * *" for every day at nine in the morning.
// Occurrences are computed in the location of the time passed in.
type Daily struct {
	spec  string
	sched cron.Schedule
}

// ParseDaily parses a cron expression.
func ParseDaily(spec string) (*Daily, error) {
	var (
		err   error
		sched cron.Schedule
	)

	if sched, err = cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	return &Daily{spec: spec, sched: sched}, nil
} // func ParseDaily(spec string) (*Daily, error)

// MustParseDaily is like ParseDaily, but panics if spec is invalid.
func MustParseDaily(spec string) *Daily {
	var d, err = ParseDaily(spec)
	if err != nil {
		panic(err)
	}
	return d
} // func MustParseDaily(spec string) *Daily

// Next returns the first occurrence at or after t. If today's occurrence
// has passed, it rolls over to the next day.
func (d *Daily) Next(t time.Time) time.Time {
	// cron only ever looks at whole seconds strictly after its argument.
	return d.sched.Next(t.Add(-time.Nanosecond))
} // func (d *Daily) Next(t time.Time) time.Time

// After returns the first occurrence strictly after t.
func (d *Daily) After(t time.Time) time.Time {
	return d.sched.Next(t)
} // func (d *Daily) After(t time.Time) time.Time

func (d *Daily) String() string {
	return d.spec
} // func (d *Daily) String() string
