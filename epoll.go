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

//go:build linux

package epoll

import (
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"

	errorx "github.com/Gilnaa/epoll/pkg/errors"
)

// Poller owns a single epoll instance. It keeps no user-space registration
// table; the kernel interest list is the source of truth.
//
// Registering, modifying and removing descriptors is safe from one goroutine
// while another blocks in Wait on the same poller; the kernel guarantees
// that, and the poller adds no locking of its own. The caller must make sure
// no Wait is in flight when Close releases the descriptor.
type Poller struct {
	fd     int
	closed int32
}

// OpenPoller creates a new epoll instance with the close-on-exec flag set.
// The instance consumes one file-descriptor slot of the process; failures to
// allocate it carry the underlying OS error.
func OpenPoller() (*Poller, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("epoll_create1", err)
	}
	return &Poller{fd: fd}, nil
}

// Fd returns the descriptor of the epoll instance itself, e.g. for
// registering one poller onto another.
func (p *Poller) Fd() int {
	return p.fd
}

// Add registers fd with the given interest mask and a caller-chosen tag.
// The tag is opaque: the kernel echoes it back verbatim in every event fd
// produces, and callers use it to map events back to their own state.
//
// The poller does not own fd. The caller must keep it open while registered,
// and must Delete it before closing it whenever the descriptor number may be
// reused, or a later registration of the recycled number will collide with
// the stale kernel-side entry.
func (p *Poller) Add(fd int, events IOEvent, tag uint64) error {
	if p.isClosed() {
		return errorx.ErrPollerClosed
	}
	var ev Event
	ev.set(events, tag)
	if err := epollCtl(p.fd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return ctlError("epoll_ctl add", err)
	}
	return nil
}

// Mod replaces the interest mask and tag of an already-registered fd.
func (p *Poller) Mod(fd int, events IOEvent, tag uint64) error {
	if p.isClosed() {
		return errorx.ErrPollerClosed
	}
	var ev Event
	ev.set(events, tag)
	if err := epollCtl(p.fd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return ctlError("epoll_ctl mod", err)
	}
	return nil
}

// Delete removes fd from the interest list; it produces no further events.
// Removing a descriptor the kernel already dropped (because it was closed)
// reports ErrNotRegistered and leaves the poller untouched, so callers may
// treat removal as idempotent.
func (p *Poller) Delete(fd int) error {
	if p.isClosed() {
		return errorx.ErrPollerClosed
	}
	// Kernels before 2.6.9 insist on a non-nil event for EPOLL_CTL_DEL even
	// though it is unused.
	var ev Event
	if err := epollCtl(p.fd, unix.EPOLL_CTL_DEL, fd, &ev); err != nil {
		return ctlError("epoll_ctl del", err)
	}
	return nil
}

// Wait blocks the calling goroutine until at least one registered descriptor
// is ready, the timeout elapses, or signal delivery interrupts the wait. It
// returns the number of events written into the leading slots of events.
//
// A return of 0 with a nil error means the timeout elapsed; an empty buffer
// trivially returns 0 without entering the kernel. Events arrive in kernel
// scan order, which is not stable across calls. An interrupted wait is
// reported as errors.ErrInterrupted and never conflated with a timeout; the
// caller decides whether to retry.
//
// Concurrent Wait calls on one poller are permitted; the kernel then
// distributes ready events among the callers arbitrarily.
func (p *Poller) Wait(events []Event, timeout Timeout) (int, error) {
	if p.isClosed() {
		return 0, errorx.ErrPollerClosed
	}
	if len(events) == 0 {
		return 0, nil
	}
	n, err := epollWait(p.fd, events, int(timeout))
	if err != nil {
		if err == unix.EINTR {
			return 0, errorx.WithErrno(errorx.ErrInterrupted, "epoll_wait", err)
		}
		return 0, os.NewSyscallError("epoll_wait", err)
	}
	return n, nil
}

// Close releases the epoll descriptor exactly once. Any operation after the
// first Close, including Close itself, reports ErrPollerClosed.
func (p *Poller) Close() error {
	if !atomic.CompareAndSwapInt32(&p.closed, 0, 1) {
		return errorx.ErrPollerClosed
	}
	return os.NewSyscallError("close", unix.Close(p.fd))
}

func (p *Poller) isClosed() bool {
	return atomic.LoadInt32(&p.closed) == 1
}

// ctlError classifies an epoll_ctl failure so that callers can build control
// flow on the distinctions, while the raw errno stays reachable through
// errors.Is/Unwrap.
func ctlError(op string, err error) error {
	switch err {
	case unix.EEXIST:
		return errorx.WithErrno(errorx.ErrAlreadyRegistered, op, err)
	case unix.ENOENT:
		return errorx.WithErrno(errorx.ErrNotRegistered, op, err)
	case unix.ENOSPC:
		return errorx.WithErrno(errorx.ErrRegistryFull, op, err)
	case unix.EBADF, unix.EINVAL, unix.EPERM:
		return errorx.WithErrno(errorx.ErrInvalidDescriptor, op, err)
	}
	return os.NewSyscallError(op, err)
}
