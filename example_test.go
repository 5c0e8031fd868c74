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

package epoll_test

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/Gilnaa/epoll"
)

func Example() {
	poller, err := epoll.OpenPoller()
	if err != nil {
		panic(fmt.Sprintf("Error opening poller: %v", err))
	}

	defer poller.Close() //nolint:errcheck

	fds := make([]int, 2)
	if err := unix.Pipe2(fds, unix.O_CLOEXEC); err != nil {
		panic(fmt.Sprintf("Error creating pipe: %v", err))
	}

	defer func() {
		unix.Close(fds[0]) //nolint:errcheck
		unix.Close(fds[1]) //nolint:errcheck
	}()

	// Watch the read end of the pipe; 7 is a caller-defined identifier that
	// comes back in every event this descriptor produces.
	if err := poller.Add(fds[0], epoll.In, 7); err != nil {
		panic(fmt.Sprintf("Error registering pipe: %v", err))
	}

	if _, err := unix.Write(fds[1], []byte{'x'}); err != nil {
		panic(fmt.Sprintf("Error writing to pipe: %v", err))
	}

	events := make([]epoll.Event, 2)
	n, err := poller.Wait(events, epoll.Milliseconds(500))
	if err != nil {
		panic(fmt.Sprintf("Error waiting for events: %v", err))
	}

	for _, ev := range events[:n] {
		fmt.Printf("tag=%d readable=%v\n", ev.Tag(), epoll.IsReadEvent(ev.Events()))
	}

	// Output:
	// tag=7 readable=true
}
