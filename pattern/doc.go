// Copyright 2025 The Rivaas Authors
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

// Package pattern parses and represents path templates.
//
// A path template is a sequence of slash-separated segments. Each segment is
// one of three kinds:
//
//   - Constant: matched byte-for-byte ("users", "api", "v2")
//   - Parameter: matches exactly one path segment and binds it (":id")
//   - Wildcard: consumes the remainder of the path and binds it ("*filepath")
//
// A wildcard may only appear as the final segment. The empty template and "/"
// both denote the root pattern.
//
// Example:
//
//	p, err := pattern.Parse("/users/:id/files/*path")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p) // "/users/:id/files/*path"
package pattern
