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
	lru "github.com/hashicorp/golang-lru"
	log "github.com/inconshreveable/log15"
	"github.com/solana-labs/move/common/mclock"
	"github.com/solana-labs/move/rtype"
)

const descCacheLimit = 256

// Emitter describes whole type universes. Nested types repeat across struct
// layouts, so descriptions are cached per type name; universes are fanned out
// over a bounded worker pool.
type Emitter struct {
	pool  *describePool
	cache *lru.Cache // type name -> *TypeDescription
	log   log.Logger
}

// NewEmitter creates an emitter running at most workerNum concurrent
// describe jobs.
func NewEmitter(workerNum int) *Emitter {
	cache, _ := lru.New(descCacheLimit)
	return &Emitter{
		pool:  newDescribePool(workerNum),
		cache: cache,
		log:   log.New("module", "debuginfo"),
	}
}

// Describe renders one type, consulting the description cache first.
func (e *Emitter) Describe(t *rtype.Type) *TypeDescription {
	if cached, ok := e.cache.Get(t.Name()); ok {
		cacheHitMeter.Mark(1)
		return cached.(*TypeDescription)
	}
	cacheMissMeter.Mark(1)
	d := Describe(t)
	describeMeter.Mark(1)
	e.cache.Add(t.Name(), d)
	return d
}

// DescribeAll renders every type of a universe, in input order.
func (e *Emitter) DescribeAll(types []*rtype.Type) []*TypeDescription {
	start := mclock.Now()
	descs := make([]*TypeDescription, len(types))
	for i, t := range types {
		i, t := i, t
		e.pool.AddFunc(func() {
			descs[i] = e.Describe(t)
		})
	}
	e.pool.WaitForAll()
	e.log.Debug("Described type universe", "types", len(types), "elapsed", mclock.Since(start))
	return descs
}

// Stop releases the emitter's workers. The emitter must not be used after
// Stop.
func (e *Emitter) Stop() {
	e.pool.StopAll()
}
