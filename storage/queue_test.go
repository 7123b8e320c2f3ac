// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"fmt"
	"testing"
)

// main queue test
func TestQueue(t *testing.T) {
	store := setup(t)
	defer teardown(t, store)

	q := store.BuyNotifications

	// empty queue behaviour
	if 0 != q.Count() {
		t.Errorf("count: actual: %d  expected: 0", q.Count())
	}
	if nil != q.Front() {
		t.Errorf("front of empty queue not nil")
	}
	if nil != q.PopFront() {
		t.Errorf("pop of empty queue not nil")
	}

	// push a batch and verify FIFO order
	for i := 0; i < 5; i += 1 {
		q.PushBack([]byte(fmt.Sprintf("entry-%d", i)))
	}
	if 5 != q.Count() {
		t.Errorf("count: actual: %d  expected: 5", q.Count())
	}

	elements := q.Elements()
	if 5 != len(elements) {
		t.Fatalf("elements: actual: %d  expected: 5", len(elements))
	}
	for i, element := range elements {
		expected := []byte(fmt.Sprintf("entry-%d", i))
		if !bytes.Equal(expected, element) {
			t.Errorf("%d: actual: %q  expected: %q", i, element, expected)
		}
	}

	// front is non-destructive
	if !bytes.Equal([]byte("entry-0"), q.Front()) {
		t.Errorf("front: actual: %q  expected: %q", q.Front(), "entry-0")
	}
	if 5 != q.Count() {
		t.Errorf("count after front: actual: %d  expected: 5", q.Count())
	}

	// interleave pops and pushes
	if !bytes.Equal([]byte("entry-0"), q.PopFront()) {
		t.Errorf("pop out of order")
	}
	q.PushBack([]byte("entry-5"))
	if !bytes.Equal([]byte("entry-1"), q.PopFront()) {
		t.Errorf("pop out of order")
	}
	if 4 != q.Count() {
		t.Errorf("count: actual: %d  expected: 4", q.Count())
	}

	// drain completely
	for i := 2; i <= 5; i += 1 {
		expected := []byte(fmt.Sprintf("entry-%d", i))
		actual := q.PopFront()
		if !bytes.Equal(expected, actual) {
			t.Errorf("drain: actual: %q  expected: %q", actual, expected)
		}
	}
	if 0 != q.Count() {
		t.Errorf("count after drain: actual: %d  expected: 0", q.Count())
	}
	if nil != q.PopFront() {
		t.Errorf("pop of drained queue not nil")
	}

	// the two notification queues are independent
	store.SellNotifications.PushBack([]byte("sell-entry"))
	if 0 != q.Count() {
		t.Errorf("queues share entries")
	}
	if 1 != store.SellNotifications.Count() {
		t.Errorf("sell queue count: actual: %d  expected: 1", store.SellNotifications.Count())
	}
}
