// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/identity"
)

// Router - in-process transport for a set of ledgers
//
// realises the delivery contract without sockets: at-most-once
// delivery, an explicit bounce of tracked envelopes whose
// destination is unreachable or whose remote execution fails, and
// fan-out of channel publications to every subscribed chain
//
// used by the multi-ledger tests and by single-process simulation
// runs; the daemon uses the ZeroMQ transport in peer and publish
// instead
type Router struct {
	sync.Mutex

	log      *logger.L
	handlers map[identity.ChainID]Handler
	channels map[string]map[identity.ChainID]struct{}
	queue    []*Envelope
	nextID   uint64
}

// NewRouter - create an empty router
func NewRouter(log *logger.L) *Router {
	return &Router{
		log:      log,
		handlers: make(map[identity.ChainID]Handler),
		channels: make(map[string]map[identity.ChainID]struct{}),
	}
}

// node - the Messenger handed to one connected ledger
type node struct {
	chain  identity.ChainID
	router *Router
}

// Connect - attach a ledger to the router
//
// the returned Messenger stamps the ledger's chain id onto every
// outbound envelope
func (router *Router) Connect(chain identity.ChainID, handler Handler) Messenger {
	router.Lock()
	defer router.Unlock()
	router.handlers[chain] = handler
	return &node{
		chain:  chain,
		router: router,
	}
}

// Disconnect - detach a ledger, later deliveries to it fail
func (router *Router) Disconnect(chain identity.ChainID) {
	router.Lock()
	defer router.Unlock()
	delete(router.handlers, chain)
}

// Send - queue a directed envelope
func (n *node) Send(env *Envelope) {
	n.router.enqueue(n.chain, env)
}

// Publish - queue a broadcast envelope
func (n *node) Publish(env *Envelope) {
	n.router.enqueue(n.chain, env)
}

// Subscribe - bind a chain to a broadcast channel
func (n *node) Subscribe(chain identity.ChainID, channel string) {
	n.router.SubscribeChannel(channel, chain)
}

// stamp and queue an outbound envelope
func (router *Router) enqueue(from identity.ChainID, env *Envelope) {
	router.Lock()
	defer router.Unlock()
	router.nextID += 1
	env.ID = router.nextID
	env.From = from
	router.queue = append(router.queue, env)
}

// SubscribeChannel - bind a chain to a named channel, idempotent
//
// the zmq transport subscribes at socket level; here the binding is
// explicit
func (router *Router) SubscribeChannel(channel string, chain identity.ChainID) {
	router.Lock()
	defer router.Unlock()
	members, ok := router.channels[channel]
	if !ok {
		members = make(map[identity.ChainID]struct{})
		router.channels[channel] = members
	}
	members[chain] = struct{}{}
}

// Drain - deliver queued envelopes until the queue is empty
//
// each delivery runs the destination handler to completion; sends
// performed by a handler are queued behind the current batch, so
// ordering matches arrival order at a single-threaded actor
func (router *Router) Drain() {
	for {
		router.Lock()
		if 0 == len(router.queue) {
			router.Unlock()
			return
		}
		env := router.queue[0]
		router.queue = router.queue[1:]
		router.Unlock()

		if "" != env.Channel {
			router.fanOut(env)
			continue
		}
		router.deliver(env)
	}
}

// deliver a directed envelope, bouncing a tracked failure
func (router *Router) deliver(env *Envelope) {
	router.Lock()
	handler, ok := router.handlers[env.To]
	router.Unlock()

	var err error
	if !ok {
		err = fault.ErrMessageUndeliverable
	} else {
		err = handler.HandleEnvelope(env)
	}

	if nil == err || env.Bounced {
		return
	}

	if nil != router.log {
		router.log.Warnf("delivery failed: %s from: %s  error: %s", env.Tag, env.From, err)
	}

	// only tracked envelopes are returned to their origin
	if !env.Tracked {
		return
	}

	bounce := *env
	bounce.Bounced = true
	bounce.To = env.From

	router.Lock()
	origin, ok := router.handlers[env.From]
	router.Unlock()
	if !ok {
		return // origin has gone away, the bounce is lost
	}
	if err := origin.HandleEnvelope(&bounce); nil != err {
		if nil != router.log {
			router.log.Errorf("bounce failed: %s  error: %s", env.Tag, err)
		}
	}
}

// fan a publication out to every subscriber
func (router *Router) fanOut(env *Envelope) {
	router.Lock()
	members := make([]identity.ChainID, 0, len(router.channels[env.Channel]))
	for chain := range router.channels[env.Channel] {
		members = append(members, chain)
	}
	router.Unlock()

	for _, chain := range members {
		delivery := *env
		delivery.To = chain
		router.deliver(&delivery)
	}
}
