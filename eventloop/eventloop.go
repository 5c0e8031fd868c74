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

// Package eventloop is a thin convenience layer over the epoll poller: a set
// of file-like objects, all watched for readability, whose Wait returns the
// objects that are ready. It dispatches nothing and schedules nothing; the
// caller drives the loop.
package eventloop

import (
	"errors"
	"sync"

	"github.com/Gilnaa/epoll"
	errorx "github.com/Gilnaa/epoll/pkg/errors"
	"github.com/Gilnaa/epoll/pkg/logging"
)

const (
	// initialEventsCap is the initial capacity of the wait buffer.
	initialEventsCap = 64
	// maxEventsCap caps the growth of the wait buffer.
	maxEventsCap = 1024
)

// File is any object owning an open file descriptor. The descriptor must
// stay open, and its number must not be recycled, for as long as the object
// is registered on an event loop.
type File interface {
	Fd() int
}

// EventLoop watches a set of Files for readability. Add, Remove and Wait may
// be called from different goroutines, but only one goroutine should drive
// Wait at a time.
type EventLoop struct {
	poller *epoll.Poller

	mu    sync.RWMutex
	files map[uint64]File

	events []epoll.Event
}

// New creates an empty event loop.
func New() (*EventLoop, error) {
	p, err := epoll.OpenPoller()
	if err != nil {
		return nil, err
	}
	return &EventLoop{
		poller: p,
		files:  make(map[uint64]File),
		events: make([]epoll.Event, initialEventsCap),
	}, nil
}

// Add registers f for readability, keyed by its descriptor number.
func (el *EventLoop) Add(f File) error {
	fd := f.Fd()
	if err := el.poller.Add(fd, epoll.ReadEvents, uint64(fd)); err != nil {
		return err
	}
	el.mu.Lock()
	el.files[uint64(fd)] = f
	el.mu.Unlock()
	return nil
}

// Remove takes f off the loop; it produces no further events.
func (el *EventLoop) Remove(f File) error {
	fd := f.Fd()
	el.mu.Lock()
	delete(el.files, uint64(fd))
	el.mu.Unlock()
	return el.poller.Delete(fd)
}

// Len reports how many files are currently registered.
func (el *EventLoop) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.files)
}

// Wait blocks up to the timeout and returns the files that are ready to be
// read. A signal interrupting the wait is absorbed: the wait is retried with
// the full timeout, so heavily signalled processes may block longer than
// asked. Files removed concurrently may still be reported by the kernel;
// those events are dropped here.
func (el *EventLoop) Wait(timeout epoll.Timeout) ([]File, error) {
	for {
		n, err := el.poller.Wait(el.events, timeout)
		if err != nil {
			if errors.Is(err, errorx.ErrInterrupted) {
				logging.Debugf("wait interrupted by a signal, retrying")
				continue
			}
			return nil, err
		}

		el.mu.RLock()
		ready := make([]File, 0, n)
		for i := 0; i < n; i++ {
			if f, ok := el.files[el.events[i].Tag()]; ok {
				ready = append(ready, f)
			}
		}
		el.mu.RUnlock()

		if n == len(el.events) && len(el.events) < maxEventsCap {
			el.events = make([]epoll.Event, len(el.events)<<1)
		}
		return ready, nil
	}
}

// Close releases the underlying poller. Registered files are left open; they
// belong to the caller.
func (el *EventLoop) Close() error {
	if err := el.poller.Close(); err != nil {
		logging.Errorf("failed to close the poller of the event loop, %v", err)
		return err
	}
	return nil
}
