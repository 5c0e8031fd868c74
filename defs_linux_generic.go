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

//go:build linux && !386 && !amd64

package epoll

// Event mirrors the kernel's struct epoll_event. Outside x86 the structure
// is naturally aligned, leaving 4 bytes of padding between the interest bits
// and the data word.
type Event struct {
	events uint32
	_pad   uint32
	data   [8]byte
}
