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

package eventloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/Gilnaa/epoll"
	errorx "github.com/Gilnaa/epoll/pkg/errors"
)

type pipeFile struct {
	r, w int
}

func (p *pipeFile) Fd() int { return p.r }

func newPipeFile(t *testing.T) *pipeFile {
	t.Helper()
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe2(fds, unix.O_CLOEXEC))
	t.Cleanup(func() {
		_ = unix.Close(fds[0])
		_ = unix.Close(fds[1])
	})
	return &pipeFile{r: fds[0], w: fds[1]}
}

func newLoop(t *testing.T) *EventLoop {
	t.Helper()
	el, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = el.Close() })
	return el
}

func TestWaitReturnsReadyFiles(t *testing.T) {
	el := newLoop(t)
	quiet := newPipeFile(t)
	noisy := newPipeFile(t)

	require.NoError(t, el.Add(quiet))
	require.NoError(t, el.Add(noisy))
	require.Equal(t, 2, el.Len())

	_, err := unix.Write(noisy.w, []byte{'x'})
	require.NoError(t, err)

	ready, err := el.Wait(epoll.Milliseconds(500))
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Same(t, noisy, ready[0])
}

func TestWaitNothingReady(t *testing.T) {
	el := newLoop(t)
	require.NoError(t, el.Add(newPipeFile(t)))

	ready, err := el.Wait(epoll.Immediate)
	require.NoError(t, err)
	assert.Empty(t, ready)
}

func TestRemoveStopsEvents(t *testing.T) {
	el := newLoop(t)
	f := newPipeFile(t)

	require.NoError(t, el.Add(f))
	require.NoError(t, el.Remove(f))
	require.Zero(t, el.Len())

	_, err := unix.Write(f.w, []byte{'x'})
	require.NoError(t, err)

	ready, err := el.Wait(epoll.Immediate)
	require.NoError(t, err)
	assert.Empty(t, ready)

	// Removing twice reports the kernel's view.
	require.ErrorIs(t, el.Remove(f), errorx.ErrNotRegistered)

	// A removed file can come back.
	require.NoError(t, el.Add(f))
	ready, err = el.Wait(epoll.Milliseconds(500))
	require.NoError(t, err)
	require.Len(t, ready, 1)
}

func TestClosedLoop(t *testing.T) {
	el, err := New()
	require.NoError(t, err)
	f := newPipeFile(t)

	require.NoError(t, el.Close())

	require.ErrorIs(t, el.Add(f), errorx.ErrPollerClosed)
	_, err = el.Wait(epoll.Immediate)
	require.ErrorIs(t, err, errorx.ErrPollerClosed)
	require.ErrorIs(t, el.Close(), errorx.ErrPollerClosed)
}
