// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smt

import (
	"errors"
	"fmt"
)

// Code is one of the stable error codes embedders can switch on without
// depending on error string text.
type Code int

// The error code surface is fixed by the external interface: embedders may
// persist or transmit these integers.
const (
	CodeInsufficientCapacity Code = 80
	CodeNotFound             Code = 81
	CodeInvalidStack         Code = 82
	CodeInvalidSibling       Code = 83
	CodeInvalidProof         Code = 84
)

func (c Code) String() string {
	switch c {
	case CodeInsufficientCapacity:
		return "InsufficientCapacity"
	case CodeNotFound:
		return "NotFound"
	case CodeInvalidStack:
		return "InvalidStack"
	case CodeInvalidSibling:
		return "InvalidSibling"
	case CodeInvalidProof:
		return "InvalidProof"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is the error type this package returns for failures that carry one
// of the Codes above. Store failures are not converted: they come back
// wrapped with fmt.Errorf and carry no Code. Op names the failing
// operation (e.g. "Tree.Get", "Verify") the way trillian's storage errors
// are tagged with the call that produced them.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("smt: %s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("smt: %s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

// CodeOf extracts the Code from err if it is (or wraps) an *Error, and
// reports whether one was found.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
