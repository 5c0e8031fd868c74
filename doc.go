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

/*
Package epoll provides a safe interface over the Linux epoll readiness
notification facility - https://man7.org/linux/man-pages/man7/epoll.7.html.

A Poller owns one epoll instance. Descriptors are registered on it with an
interest mask and an opaque, caller-chosen 64-bit tag; a Wait call then
blocks until one or more descriptors become ready and reports each of them
as an Event carrying the conditions that became true and the registration's
tag:

	poller, err := epoll.OpenPoller()
	if err != nil {
		// handle error
	}

	defer poller.Close()

	// Register the read end of a pipe; 7 is a caller-defined identifier
	// that will come back in every event the descriptor produces.
	if err := poller.Add(readFD, epoll.In, 7); err != nil {
		// handle error
	}

	events := make([]epoll.Event, 64)
	n, err := poller.Wait(events, epoll.Milliseconds(500))
	if err != nil {
		// handle error
	}
	for _, ev := range events[:n] {
		switch ev.Tag() {
		case 7:
			// readFD is ready; ev.Events() tells which conditions hold.
		}
	}

The poller does not own registered descriptors and keeps no table of them in
user space; the kernel interest list is the single source of truth. Callers
keep their descriptors open while registered and Delete them before closing
when the descriptor number may be reused.

Waits are plain blocking calls with a millisecond timeout (Indefinite,
Immediate, or Milliseconds/Duration). There is no built-in cancellation; a
Waker - an eventfd registered like any other descriptor - is the idiomatic
way to make a blocked Wait return early.

The package is Linux-only by design; it mirrors the semantics of exactly one
readiness facility rather than abstracting over epoll, kqueue and their
kin. For a portable event engine built on the same mechanism, see
github.com/panjf2000/gnet.
*/
package epoll
