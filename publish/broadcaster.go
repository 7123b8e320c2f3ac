// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/messagebus"
	"github.com/microcow/microcowd/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
	broadcastQueueSize   = 1000
)

type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
	queue  chan *messagebus.Envelope
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(privateKey []byte, publicKey []byte, broadcast []string) error {

	log := logger.New("broadcaster")
	brdc.log = log

	log.Info("initialising…")

	brdc.queue = make(chan *messagebus.Envelope, broadcastQueueSize)

	socket, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}
	brdc.socket = socket

	return nil
}

// Run - drain the broadcast queue onto the PUB socket
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case env := <-brdc.queue:
			brdc.process(env)
		}
	}
	brdc.socket.Close()
}

// publish one envelope, topic frame first so subscribers can filter
// on the channel name
func (brdc *broadcaster) process(env *messagebus.Envelope) {

	log := brdc.log

	packed, err := env.Pack()
	if nil != err {
		log.Errorf("pack %s  error: %s", env.Tag, err)
		return
	}

	log.Debugf("sending: %s  channel: %q", env.Tag, env.Channel)

	_, err = brdc.socket.Send(env.Channel, zmq.SNDMORE|zmq.DONTWAIT)
	logger.PanicIfError("broadcaster", err)
	_, err = brdc.socket.SendBytes(packed, zmq.DONTWAIT)
	logger.PanicIfError("broadcaster", err)
}
