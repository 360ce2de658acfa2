// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors. All are programming or configuration errors in the
// wrapped model or the enclosing algorithm; none are retried internally.
var (
	// ErrDuplicateSite reports two primitive calls with the same name
	// within one traced execution.
	ErrDuplicateSite = errors.New("stoch: duplicate site name")

	// ErrEmptyQueue reports a pop from an exhausted trace queue, which
	// would otherwise deadlock the enumeration loop.
	ErrEmptyQueue = errors.New("stoch: trace queue is empty")

	// ErrMaxTries reports that enumeration gave up before completing a
	// trace.
	ErrMaxTries = errors.New("stoch: max tries exceeded")

	// ErrNilPrimitive reports a site with no primitive and no handler
	// willing to supply a value.
	ErrNilPrimitive = errors.New("stoch: site has no primitive")

	// ErrNotEnumerable reports an enumeration request against a primitive
	// without finite discrete support.
	ErrNotEnumerable = errors.New("stoch: primitive has no enumerable support")

	// ErrNotScored reports a log-probability request against a primitive
	// that cannot score values.
	ErrNotScored = errors.New("stoch: primitive cannot score values")

	// ErrSiteMismatch reports a replay against a reference trace whose
	// recorded site is incompatible with the model's site.
	ErrSiteMismatch = errors.New("stoch: site incompatible with reference trace")
)

// SiteError wraps a sentinel with the offending site and detail.
type SiteError struct {
	Kind error
	Site string
	Msg  string
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	s := e.Kind.Error()
	if e.Site != "" {
		s += ": site " + strconv.Quote(e.Site)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// Unwrap exposes the sentinel for errors.Is.
func (e *SiteError) Unwrap() error { return e.Kind }

func siteErrorf(kind error, site, format string, args ...any) error {
	return &SiteError{Kind: kind, Site: site, Msg: fmt.Sprintf(format, args...)}
}
