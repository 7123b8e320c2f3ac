// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/messagebus"
)

// idle interval between server info probes
const connectorProbeInterval = 60 * time.Second

type connector struct {
	log       *logger.L
	messenger *clientMessenger
	handler   messagebus.Handler
}

// initialise the connector
func (conn *connector) initialise(messenger *clientMessenger, handler messagebus.Handler) error {

	log := logger.New("connector")
	conn.log = log

	log.Info("initialising…")

	conn.messenger = messenger
	conn.handler = handler

	return nil
}

// Run - drain the outbound queue onto the root listener
func (conn *connector) Run(args interface{}, shutdown <-chan struct{}) {

	log := conn.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case env := <-conn.messenger.out:
			conn.exchange(env)
		case <-time.After(connectorProbeInterval):
			conn.probe()
		}
	}
	conn.messenger.client.Close()
}

// perform one REQ/REP exchange
//
// any failure of a tracked envelope becomes a local bounce so the
// origin ledger compensates its optimistic debit
func (conn *connector) exchange(env *messagebus.Envelope) {

	log := conn.log
	client := conn.messenger.client

	packed, err := env.Pack()
	if nil != err {
		log.Errorf("pack %s  error: %s", env.Tag, err)
		conn.bounce(env)
		return
	}

	err = client.Send([]byte("M"), packed)
	if nil != err {
		log.Errorf("send %s  error: %s", env.Tag, err)
		client.Reconnect()
		conn.bounce(env)
		return
	}

	data, err := client.Receive()
	if nil != err {
		// a timed out REQ socket must be recreated
		log.Errorf("receive for %s  error: %s", env.Tag, err)
		client.Reconnect()
		conn.bounce(env)
		return
	}

	if len(data) < 1 {
		conn.bounce(env)
		return
	}

	switch string(data[0]) {
	case "M":
		// deliver any direct replies that rode back on the exchange
		for _, packedReply := range data[1:] {
			reply, err := messagebus.UnpackEnvelope(packedReply)
			if nil != err {
				log.Errorf("unpack reply error: %s", err)
				continue
			}
			if err := conn.handler.HandleEnvelope(reply); nil != err {
				log.Errorf("handle reply %s  error: %s", reply.Tag, err)
			}
		}

	case "E":
		reason := ""
		if len(data) > 1 {
			reason = string(data[1])
		}
		log.Warnf("root refused %s: %q", env.Tag, reason)
		conn.bounce(env)

	default:
		log.Errorf("unexpected reply: %q", data[0])
		conn.bounce(env)
	}
}

// return a failed tracked envelope to its origin ledger
func (conn *connector) bounce(env *messagebus.Envelope) {
	if !env.Tracked || env.Bounced {
		return
	}

	bounced := *env
	bounced.Bounced = true
	bounced.To = env.From

	if err := conn.handler.HandleEnvelope(&bounced); nil != err {
		conn.log.Errorf("bounce %s  error: %s", env.Tag, err)
	}
}

// request server information as a connectivity check
func (conn *connector) probe() {

	log := conn.log
	client := conn.messenger.client

	err := client.Send([]byte("I"))
	if nil != err {
		log.Warnf("probe send error: %s", err)
		client.Reconnect()
		return
	}
	data, err := client.Receive()
	if nil != err {
		log.Warnf("probe receive error: %s", err)
		client.Reconnect()
		return
	}
	if len(data) >= 2 && "I" == string(data[0]) {
		log.Debugf("root info: %s", data[1])
	}
}
