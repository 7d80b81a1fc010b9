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

import "sync"

// jobQueue is an unbounded two-stack FIFO of pending describe jobs.
type jobQueue struct {
	head    []func()
	headPos int
	tail    []func()
	muQueue sync.Mutex
}

// pushBack adds j to the back of the queue.
func (q *jobQueue) pushBack(j func()) {
	q.muQueue.Lock()
	defer q.muQueue.Unlock()
	q.tail = append(q.tail, j)
}

// popFront removes and returns the job at the front of the queue.
func (q *jobQueue) popFront() func() {
	q.muQueue.Lock()
	defer q.muQueue.Unlock()
	if q.headPos >= len(q.head) {
		if len(q.tail) == 0 {
			return nil
		}
		// Pick up tail as new head, clear tail.
		q.head, q.headPos, q.tail = q.tail, 0, q.head[:0]
	}
	j := q.head[q.headPos]
	q.head[q.headPos] = nil
	q.headPos++
	return j
}

// describePool runs describe jobs on a bounded set of worker goroutines.
// Workers start lazily on demand and exit when StopAll drains the pool.
type describePool struct {
	jobs    *jobQueue
	wake    chan struct{}
	stop    chan struct{}
	wg      sync.WaitGroup
	locker  sync.Mutex
	workers int
	max     int
}

func newDescribePool(workerNum int) *describePool {
	if workerNum < 1 {
		workerNum = 1
	}
	return &describePool{
		jobs: new(jobQueue),
		wake: make(chan struct{}, workerNum),
		stop: make(chan struct{}),
		max:  workerNum,
	}
}

// AddFunc queues one job, starting a worker if the pool is not yet at its
// bound.
func (p *describePool) AddFunc(job func()) {
	p.wg.Add(1)
	p.jobs.pushBack(func() {
		defer p.wg.Done()
		job()
	})
	p.startWorker()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *describePool) startWorker() {
	p.locker.Lock()
	defer p.locker.Unlock()
	if p.workers < p.max {
		p.workers++
		go p.work()
	}
}

// One worker start to work.
func (p *describePool) work() {
	for {
		if j := p.jobs.popFront(); j != nil {
			j()
			continue
		}
		select {
		case <-p.stop:
			return
		case <-p.wake:
		}
	}
}

// WaitForAll blocks until every queued job has finished.
func (p *describePool) WaitForAll() {
	p.wg.Wait()
}

// StopAll stops all workers after the queue drains.
func (p *describePool) StopAll() {
	p.wg.Wait()
	close(p.stop)
}
