// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import "io"

// stateful is a small mixin giving Writer and Reader a sticky error and a
// closed flag, adapted from the teacher's richer multi-state "stateful"
// mixin (gogama/flatgeobuf's stateful.go) down to the two states this
// format's lifecycle actually needs: our Writer has no separate magic/
// header/index/data call sequence to police (Finish does all of that
// internally, spec.md §6), so all that remains worth enforcing is "once
// something has gone wrong, or once closed, every further call fails the
// same way".
type stateful struct {
	err    error
	closed bool
}

// poison records err as the sticky failure for all future calls and
// returns it, matching spec.md §7: "partial writes from a failed
// add_feature poison the writer".
func (s *stateful) poison(err error) error {
	if s.err == nil {
		s.err = err
	}
	return s.err
}

// checkOpen returns the sticky error, if any, else ErrClosed if closed,
// else nil.
func (s *stateful) checkOpen() error {
	if s.err != nil {
		return s.err
	}
	if s.closed {
		return ErrClosed
	}
	return nil
}

// close marks s closed and, if c is an io.Closer, closes it. The first
// error encountered (sticky or from Close) is returned.
func (s *stateful) close(c interface{}) error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if closer, ok := c.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return s.poison(wrapErr("close failed", err))
		}
	}
	return s.err
}
