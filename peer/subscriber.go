// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/constants"
	"github.com/microcow/microcowd/messagebus"
	"github.com/microcow/microcowd/zmqutil"
)

const (
	subscriberSignal = "inproc://microcow-subscriber-signal"
)

type subscriber struct {
	log     *logger.L
	push    *zmq.Socket
	pull    *zmq.Socket
	client  *zmqutil.Client
	handler messagebus.Handler
}

// initialise the subscriber
func (sbsc *subscriber) initialise(privateKey []byte, publicKey []byte, subscribe *Connection, handler messagebus.Handler) error {

	log := logger.New("subscriber")
	sbsc.log = log

	log.Info("initialising…")

	sbsc.handler = handler

	// signalling channel
	push, pull, err := zmqutil.NewSignalPair(subscriberSignal)
	if nil != err {
		return err
	}
	sbsc.push = push
	sbsc.pull = pull

	serverPublicKey, err := decodePublicKey(subscribe.PublicKey)
	if nil != err {
		log.Errorf("subscribe public key: %q  error: %s", subscribe.PublicKey, err)
		return err
	}

	client, err := zmqutil.NewClient(zmq.SUB, privateKey, publicKey, 0)
	if nil != err {
		return err
	}
	sbsc.client = client

	err = client.Connect(subscribe.Address, serverPublicKey)
	if nil != err {
		log.Errorf("connect: %q  error: %s", subscribe.Address, err)
		return err
	}

	err = client.Subscribe(constants.BroadcastChannel)
	if nil != err {
		return err
	}
	log.Infof("subscribed: %q at: %q", constants.BroadcastChannel, subscribe.Address)

	return nil
}

// Run - deliver channel broadcasts to the ledger
func (sbsc *subscriber) Run(args interface{}, shutdown <-chan struct{}) {

	log := sbsc.log

	log.Info("starting…")

	go func() {
		poller := zmq.NewPoller()
		sbsc.client.Add(poller, zmq.POLLIN)
		poller.Add(sbsc.pull, zmq.POLLIN)
	loop:
		for {
			sockets, _ := poller.Poll(-1)
			for _, socket := range sockets {
				s := socket.Socket
				if s == sbsc.pull {
					s.RecvMessageBytes(0)
					break loop
				}
				data, err := s.RecvMessageBytes(0)
				if nil != err {
					log.Errorf("receive error: %s", err)
					continue
				}
				sbsc.process(data)
			}
		}
		sbsc.pull.Close()
		sbsc.client.Close()
	}()

	// wait for shutdown
	<-shutdown
	sbsc.push.SendMessage("stop")
	sbsc.push.Close()
}

// process one received broadcast
func (sbsc *subscriber) process(data [][]byte) {

	log := sbsc.log

	if len(data) < 2 {
		log.Warnf("short broadcast: %d frames", len(data))
		return
	}

	channel := string(data[0])
	if constants.BroadcastChannel != channel {
		log.Warnf("unexpected channel: %q", channel)
		return
	}

	env, err := messagebus.UnpackEnvelope(data[1])
	if nil != err {
		log.Errorf("unpack error: %s", err)
		return
	}

	log.Debugf("received: %s", env.Tag)

	if err := sbsc.handler.HandleEnvelope(env); nil != err {
		log.Errorf("handle %s  error: %s", env.Tag, err)
	}
}
