/*
 * errors.go, part of gorex.
 *
 * Copyright 2024 The goRex Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rex

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Functions in this package return them wrapped in a
// *CError, so callers should match them with errors.Is.
var (
	// ErrDecomposable means the second eigenvalue of a transition matrix is 1,
	// so the chain is decomposable and no equilibration time exists.
	ErrDecomposable = errors.New("rex: Perron eigenvalue is unity; Markov chain is decomposable")

	// ErrInsufficientData means the data contains no events (or too few
	// samples) for the requested statistic.
	ErrInsufficientData = errors.New("rex: insufficient data")

	// ErrMalformed signals input with invalid dimensions or indexes.
	ErrMalformed = errors.New("rex: malformed input")

	// ErrDegenerateGeometry signals collinear atoms in a dihedral.
	ErrDegenerateGeometry = errors.New("rex: degenerate geometry")

	// ErrEigen means the eigendecomposition did not converge.
	ErrEigen = errors.New("rex: eigendecomposition failed")
)

// CError is the error type of the rex package. It carries the list of
// functions it went through ("decorations") and, optionally, one of the
// sentinel errors above.
type CError struct {
	msg  string
	deco []string
	err  error
}

func newError(sentinel error, caller, format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), deco: []string{caller}, err: sentinel}
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	msg := err.msg
	if err.err != nil {
		if msg == "" {
			msg = err.err.Error()
		} else {
			msg = err.err.Error() + ": " + msg
		}
	}
	if len(err.deco) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (%s)", msg, strings.Join(err.deco, " < "))
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns the sentinel error, if any.
func (err *CError) Unwrap() error { return err.err }

// errDecorate decorates err with the caller's name if err
// implements Error, and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
