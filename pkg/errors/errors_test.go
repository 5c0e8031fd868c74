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

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestWithErrnoMatchesKindAndErrno(t *testing.T) {
	err := WithErrno(ErrAlreadyRegistered, "epoll_ctl add", unix.EEXIST)

	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.ErrorIs(t, err, unix.EEXIST)
	assert.NotErrorIs(t, err, ErrNotRegistered)

	var errno unix.Errno
	require.True(t, stderrors.As(err, &errno))
	assert.Equal(t, unix.EEXIST, errno)
}

func TestWithErrnoMessage(t *testing.T) {
	err := WithErrno(ErrNotRegistered, "epoll_ctl del", unix.ENOENT)
	assert.Contains(t, err.Error(), "not registered")
	assert.Contains(t, err.Error(), "epoll_ctl del")
}
