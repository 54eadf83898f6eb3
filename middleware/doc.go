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

// Package middleware provides optional middleware for the dispatch router.
//
// The core deliberately imposes neither timeouts nor panic handling; both
// are ordinary middleware built on the public contracts:
//
//	b := dispatch.New()
//	_ = b.Middleware(middleware.Recovery())
//	_ = b.Middleware(middleware.Timeout(30 * time.Second))
//
// Cross-route concerns that bracket every request — access logging, request
// IDs — live in the accesslog and requestid sub-packages as modifiers.
package middleware
