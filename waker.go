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
	"unsafe"

	"golang.org/x/sys/unix"

	errorx "github.com/Gilnaa/epoll/pkg/errors"
)

// Make the endianness of bytes compatible with more linux OSs under different processor-architectures,
// according to http://man7.org/linux/man-pages/man2/eventfd.2.html.
var (
	wakeCounter uint64 = 1
	wakeBuf            = (*(*[8]byte)(unsafe.Pointer(&wakeCounter)))[:]
)

// Waker is an eventfd registered on a poller so that any goroutine can make
// a blocked Wait return. The poller treats it like every other registered
// descriptor: a Wake shows up as a readable event carrying the waker's tag.
//
// Pollers impose no cancellation mechanism of their own; a waker is the
// idiomatic wake-descriptor callers combine with their own coordination to
// build cancellable waits.
type Waker struct {
	fd     int
	poller *Poller
	closed int32
}

// NewWaker creates a non-blocking, close-on-exec eventfd and registers it on
// p with readable interest under the given tag.
func NewWaker(p *Poller, tag uint64) (*Waker, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("eventfd", err)
	}
	if err := p.Add(fd, ReadEvents, tag); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return &Waker{fd: fd, poller: p}, nil
}

// Fd returns the waker's eventfd.
func (w *Waker) Fd() int {
	return w.fd
}

// Wake increments the eventfd counter, making the waker readable to its
// poller. When the counter is saturated, it is drained and the write
// retried, so Wake never blocks.
func (w *Waker) Wake() error {
	if atomic.LoadInt32(&w.closed) == 1 {
		return errorx.ErrWakerClosed
	}
	for {
		_, err := unix.Write(w.fd, wakeBuf)
		if err == unix.EAGAIN {
			w.Drain()
			continue
		}
		return os.NewSyscallError("write", err)
	}
}

// Drain consumes the pending counter so a level-triggered registration stops
// reporting the waker as readable.
func (w *Waker) Drain() {
	var buf [8]byte
	_, _ = unix.Read(w.fd, buf[:])
}

// Close removes the waker from its poller and releases the eventfd exactly
// once. The removal is best effort; the poller may already be closed.
func (w *Waker) Close() error {
	if !atomic.CompareAndSwapInt32(&w.closed, 0, 1) {
		return errorx.ErrWakerClosed
	}
	_ = w.poller.Delete(w.fd)
	return os.NewSyscallError("close", unix.Close(w.fd))
}
