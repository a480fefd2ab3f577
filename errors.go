// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package ordtree

import "github.com/cockroachdb/errors"

// ErrOutOfMemory is returned when a node cannot be allocated because the
// map's node limit (see Info.MaxNodes) has been reached. The operation which
// observed it leaves the map unchanged.
var ErrOutOfMemory = errors.New("ordtree: out of memory")

// ErrNotFound is returned by lookups of a key which is not in the map.
var ErrNotFound = errors.New("ordtree: key not found")

// IsOutOfMemory returns true if err was caused by a refused allocation.
func IsOutOfMemory(err error) bool { return errors.Is(err, ErrOutOfMemory) }

// IsNotFound returns true if err was caused by a missing key.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
