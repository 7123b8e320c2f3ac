// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - maintain a set of background processes
//
// a background process instance must provide the Run method, all
// instances are started by a single call and stopped by a single
// call that closes each shutdown channel and waits for the Run
// methods to return
package background

// T - handle for the stop routine
type T struct {
	s []shutdown
}

type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// Process - interface to define a background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - run a list of background processes
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	for i, p := range processes {
		shutdownChannel := make(chan struct{})
		finishedChannel := make(chan struct{})
		register.s[i].shutdown = shutdownChannel
		register.s[i].finished = finishedChannel
		go func(p Process, shutdown <-chan struct{}, finished chan<- struct{}) {
			p.Run(args, shutdown)
			close(finished)
		}(p, shutdownChannel, finishedChannel)
	}
	return register
}

// Stop - shutdown all background processes and wait for them to
// terminate
func (t *T) Stop() {

	if nil == t {
		return
	}

	for _, shutdown := range t.s {
		close(shutdown.shutdown)
	}

	for _, shutdown := range t.s {
		<-shutdown.finished
	}
}
