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

import "golang.org/x/sys/unix"

// Do the interface allocations only once for common
// Errno values.
var (
	errEINTR  error = unix.EINTR
	errEINVAL error = unix.EINVAL
	errEEXIST error = unix.EEXIST
	errENOENT error = unix.ENOENT
)

// errnoErr returns common boxed Errno values, to prevent
// allocations at runtime.
func errnoErr(e unix.Errno) error {
	switch e {
	case unix.EINTR:
		return errEINTR
	case unix.EINVAL:
		return errEINVAL
	case unix.EEXIST:
		return errEEXIST
	case unix.ENOENT:
		return errENOENT
	}
	return e
}

var zero uintptr
