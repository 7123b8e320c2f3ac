// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// QueueHandle - a persistent FIFO queue inside one pool prefix
//
// entries are stored under 8 byte big-endian sequence keys; the
// current head and tail counters live under short meta keys that can
// never collide with a sequence key
type QueueHandle struct {
	pool *PoolHandle
}

// meta keys, shorter than any sequence key
var (
	headKey = []byte{'H'}
	tailKey = []byte{'T'}
)

// read a counter, zero when absent
func (q *QueueHandle) counter(key []byte) uint64 {
	buffer := q.pool.Get(key)
	if nil == buffer {
		return 0
	}
	if 8 != len(buffer) {
		logger.Panicf("queue.counter truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer)
}

// store a counter
func (q *QueueHandle) setCounter(key []byte, n uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	q.pool.Put(key, buffer)
}

// sequence number to storage key
func sequenceKey(n uint64) []byte {
	key := make([]byte, 9)
	key[0] = 'Q'
	binary.BigEndian.PutUint64(key[1:], n)
	return key
}

// PushBack - append one packed entry to the queue
func (q *QueueHandle) PushBack(value []byte) {
	tail := q.counter(tailKey)
	q.pool.Put(sequenceKey(tail), value)
	q.setCounter(tailKey, tail+1)
}

// PopFront - remove and return the front entry
//
// returns nil on an empty queue, this is not an error
func (q *QueueHandle) PopFront() []byte {
	head := q.counter(headKey)
	tail := q.counter(tailKey)
	if head >= tail {
		return nil
	}
	key := sequenceKey(head)
	value := q.pool.Get(key)
	if nil == value {
		logger.Panicf("queue.PopFront missing entry: %d", head)
	}
	q.pool.Delete(key)
	q.setCounter(headKey, head+1)
	return value
}

// Front - return the front entry without removing it
//
// returns nil on an empty queue
func (q *QueueHandle) Front() []byte {
	head := q.counter(headKey)
	tail := q.counter(tailKey)
	if head >= tail {
		return nil
	}
	value := q.pool.Get(sequenceKey(head))
	if nil == value {
		logger.Panicf("queue.Front missing entry: %d", head)
	}
	return value
}

// Count - current number of queued entries
func (q *QueueHandle) Count() uint64 {
	return q.counter(tailKey) - q.counter(headKey)
}

// Elements - all queued entries in FIFO order
func (q *QueueHandle) Elements() [][]byte {
	head := q.counter(headKey)
	tail := q.counter(tailKey)
	results := make([][]byte, 0, tail-head)
	for n := head; n < tail; n += 1 {
		value := q.pool.Get(sequenceKey(n))
		if nil == value {
			logger.Panicf("queue.Elements missing entry: %d", n)
		}
		results = append(results, value)
	}
	return results
}
