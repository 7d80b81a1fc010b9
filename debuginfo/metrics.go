// Copyright 2023 The move-native Authors
// This file is part of the move-native library.
//
// The move-native library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The move-native library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the move-native library. If not, see <http://www.gnu.org/licenses/>.

package debuginfo

import (
	"github.com/rcrowley/go-metrics"
)

var (
	describeMeter  = metrics.GetOrRegisterMeter("debuginfo/describe/types", nil)
	cacheHitMeter  = metrics.GetOrRegisterMeter("debuginfo/cache/hits", nil)
	cacheMissMeter = metrics.GetOrRegisterMeter("debuginfo/cache/misses", nil)
)
