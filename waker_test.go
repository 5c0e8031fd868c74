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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gilnaa/epoll"
	errorx "github.com/Gilnaa/epoll/pkg/errors"
)

func TestWakerWakesBlockedWait(t *testing.T) {
	p := openPoller(t)

	w, err := epoll.NewWaker(p, 99)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	type waitResult struct {
		n   int
		tag uint64
		err error
	}
	resCh := make(chan waitResult, 1)
	go func() {
		events := make([]epoll.Event, 1)
		n, err := p.Wait(events, epoll.Indefinite)
		res := waitResult{n: n, err: err}
		if n > 0 {
			res.tag = events[0].Tag()
		}
		resCh <- res
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Wake())

	res := <-resCh
	require.NoError(t, res.err)
	require.Equal(t, 1, res.n)
	assert.EqualValues(t, 99, res.tag)
}

func TestWakerDrainSilences(t *testing.T) {
	p := openPoller(t)

	w, err := epoll.NewWaker(p, 1)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	require.NoError(t, w.Wake())
	require.NoError(t, w.Wake()) // coalesces into the same counter

	events := make([]epoll.Event, 2)
	n, err := p.Wait(events, epoll.Milliseconds(500))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	w.Drain()

	n, err = p.Wait(events, epoll.Immediate)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWakerClose(t *testing.T) {
	p := openPoller(t)

	w, err := epoll.NewWaker(p, 1)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.ErrorIs(t, w.Close(), errorx.ErrWakerClosed)
	require.ErrorIs(t, w.Wake(), errorx.ErrWakerClosed)

	// The registration went with it.
	n, err := p.Wait(make([]epoll.Event, 1), epoll.Immediate)
	require.NoError(t, err)
	assert.Zero(t, n)
}
