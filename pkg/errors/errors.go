// Copyright (c) 2023 Gilad Naaman. All rights reserved.
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

// Package errors defines common errors for the epoll module.
package errors

import "errors"

var (
	// ErrPollerClosed occurs when an operation is attempted on a poller whose
	// epoll file descriptor has already been released.
	ErrPollerClosed = errors.New("epoll: poller is closed")
	// ErrInterrupted occurs when a blocking wait is cut short by signal
	// delivery before any descriptor became ready or the timeout elapsed.
	ErrInterrupted = errors.New("epoll: wait interrupted by signal")
	// ErrAlreadyRegistered occurs when adding a file descriptor that is
	// already in the kernel interest list.
	ErrAlreadyRegistered = errors.New("epoll: file descriptor already registered")
	// ErrNotRegistered occurs when modifying or removing a file descriptor
	// that is not in the kernel interest list.
	ErrNotRegistered = errors.New("epoll: file descriptor not registered")
	// ErrRegistryFull occurs when the kernel refuses a registration because
	// the per-user max_user_watches limit was reached.
	ErrRegistryFull = errors.New("epoll: kernel interest list is full")
	// ErrInvalidDescriptor occurs when the kernel rejects the target file
	// descriptor as closed, malformed, or not pollable.
	ErrInvalidDescriptor = errors.New("epoll: invalid file descriptor")
	// ErrWakerClosed occurs when waking or draining a waker whose eventfd has
	// already been released.
	ErrWakerClosed = errors.New("epoll: waker is closed")
)

// kindError couples one of the sentinel errors above with the syscall failure
// that produced it, so that errors.Is matches both the sentinel and the
// underlying errno.
type kindError struct {
	kind error
	op   string
	err  error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.op + ": " + e.err.Error()
}

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.err }

// WithErrno attaches the OS error returned by the named syscall to a sentinel
// error kind.
func WithErrno(kind error, op string, errno error) error {
	return &kindError{kind: kind, op: op, err: errno}
}
