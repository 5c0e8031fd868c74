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
	"math"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// IOEvent is the integer type of I/O events on Linux.
type IOEvent = uint32

// Interest bits, bit-exact mirrors of the kernel EPOLL* flags. They cross
// the OS boundary unmodified, both on registration and in reported events.
const (
	// In reports that the associated descriptor is available for read operations.
	In IOEvent = unix.EPOLLIN
	// Out reports that the associated descriptor is available for write operations.
	Out IOEvent = unix.EPOLLOUT
	// Pri reports that there is urgent data available for read operations.
	Pri IOEvent = unix.EPOLLPRI
	// Err reports an error condition on the associated descriptor. The kernel
	// always reports it; requesting it is unnecessary.
	Err IOEvent = unix.EPOLLERR
	// Hup reports a hang-up on the associated descriptor. The kernel always
	// reports it; requesting it is unnecessary.
	Hup IOEvent = unix.EPOLLHUP
	// RDHup reports that the stream-socket peer closed the connection or shut
	// down its writing half.
	RDHup IOEvent = unix.EPOLLRDHUP
	// EdgeTriggered switches the registration from level-triggered to
	// edge-triggered reporting.
	EdgeTriggered IOEvent = unix.EPOLLET
	// OneShot disables the registration after its first reported event; rearm
	// it with Mod.
	OneShot IOEvent = unix.EPOLLONESHOT
	// Exclusive requests exclusive wakeup when several epoll instances watch
	// the same descriptor. Valid on Add only.
	Exclusive IOEvent = unix.EPOLLEXCLUSIVE
	// WakeUp prevents system suspend while the event is pending or being
	// processed. Requires CAP_BLOCK_SUSPEND.
	WakeUp IOEvent = unix.EPOLLWAKEUP
)

const (
	// ReadEvents represents readable events.
	ReadEvents = In | Pri
	// WriteEvents represents writable events.
	WriteEvents = Out
	// ReadWriteEvents represents both readable and writable events.
	ReadWriteEvents = ReadEvents | WriteEvents
	// ErrEvents represents exceptional events that occurred.
	ErrEvents = Err | Hup
)

// IsReadEvent checks if the event is a read event.
func IsReadEvent(event IOEvent) bool {
	return event&ReadEvents != 0
}

// IsWriteEvent checks if the event is a write event.
func IsWriteEvent(event IOEvent) bool {
	return event&WriteEvents != 0
}

// IsErrorEvent checks if the event is an error event.
func IsErrorEvent(event IOEvent) bool {
	return event&ErrEvents != 0
}

// Events returns the readiness conditions the kernel reported for this event.
func (e *Event) Events() IOEvent {
	return e.events
}

// Tag returns the caller-chosen value that was attached to the registration
// this event belongs to. The poller never interprets it.
func (e *Event) Tag() uint64 {
	return *(*uint64)(unsafe.Pointer(&e.data))
}

func (e *Event) set(events IOEvent, tag uint64) {
	e.events = events
	*(*uint64)(unsafe.Pointer(&e.data)) = tag
}

// Timeout bounds a Wait call, following the kernel's signed-integer
// convention: a negative value blocks indefinitely, zero polls and returns
// immediately, and a positive value blocks for that many milliseconds.
type Timeout int32

const (
	// Indefinite blocks until a registered descriptor becomes ready or a
	// signal arrives.
	Indefinite Timeout = -1
	// Immediate checks the ready list and returns without blocking.
	Immediate Timeout = 0
)

// Milliseconds returns a Timeout of n milliseconds, clamped to the int32
// range the kernel accepts. A negative n blocks indefinitely.
func Milliseconds(n int) Timeout {
	if n < 0 {
		return Indefinite
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return Timeout(n)
}

// Duration converts d to a millisecond Timeout, rounding up so that the
// kernel never wakes earlier than d. A negative d blocks indefinitely.
func Duration(d time.Duration) Timeout {
	if d < 0 {
		return Indefinite
	}
	msec := (d + time.Millisecond - 1) / time.Millisecond
	if msec > math.MaxInt32 {
		return math.MaxInt32
	}
	return Timeout(msec)
}
