// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/microcow/microcowd/background"
)

type counter struct {
	ticks int64
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {
	increment := args.(int64)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&c.ticks, increment)
		}
	}
}

func TestStartStop(t *testing.T) {

	first := &counter{}
	second := &counter{}

	processes := background.Processes{first, second}

	handle := background.Start(processes, int64(1))
	time.Sleep(20 * time.Millisecond)
	handle.Stop()

	firstTicks := atomic.LoadInt64(&first.ticks)
	secondTicks := atomic.LoadInt64(&second.ticks)
	assert.True(t, firstTicks > 0, "first process never ran")
	assert.True(t, secondTicks > 0, "second process never ran")

	// no more ticks after Stop returns
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, firstTicks, atomic.LoadInt64(&first.ticks), "first process ran after stop")
	assert.Equal(t, secondTicks, atomic.LoadInt64(&second.ticks), "second process ran after stop")
}

func TestStopNil(t *testing.T) {
	var handle *background.T
	handle.Stop()
}
