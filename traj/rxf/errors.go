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

package rxf

import (
	"errors"
	"fmt"
	"strings"

	rex "github.com/rmera/gorex"
)

// errDecorate is a helper function that decorates the error with the
// caller's name, if it implements rex.Error, before returning it.
func errDecorate(err error, caller string) error {
	var e rex.Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// Error is the general structure for archive errors. It fullfills rex.ArchiveError.
// Errors due to malformed content wrap rex.ErrMalformed.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	err      error
}

func (err *Error) Error() string {
	ret := fmt.Sprintf("rxf file %s error: %s", err.filename, err.message)
	if len(err.deco) > 0 {
		ret += " (" + strings.Join(err.deco, " < ") + ")"
	}
	return ret
}

// Decorate Adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing archive was associated
func (err *Error) FileName() string { return err.filename }

// Format returns the format of the file (always "rxf") associated to the error
func (err *Error) Format() string { return "rxf" }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

// Unwrap returns the wrapped sentinel, if any.
func (err *Error) Unwrap() error { return err.err }

const (
	ArchUnIniRead  = "Archive object uninitialized to read"
	ArchUnIniWrite = "Archive object uninitialized to write"
	UnableToOpen   = "Unable to open file"
	NilFrame       = "Given nil frame"
)

// lastFrameError implements rex.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "rxf" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
