// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/ledger"
	"github.com/microcow/microcowd/messagebus"
	"github.com/microcow/microcowd/version"
	"github.com/microcow/microcowd/zmqutil"
)

const (
	listenerZapDomain = "listen"
	listenerSignal    = "inproc://microcow-listener-signal"

	// throttle for inbound exchanges
	listenerRateLimit = 200
	listenerRateBurst = 100
)

type listener struct {
	log     *logger.L
	push    *zmq.Socket // signal send
	pull    *zmq.Socket // signal receive
	socket  *zmq.Socket
	ldgr    *ledger.Ledger
	limiter *rate.Limiter
}

// type to hold server info
type serverInfo struct {
	Version string `json:"version"`
	Chain   string `json:"chain"`
	Cows    int    `json:"cows"`
}

// initialise the listener
func (lstn *listener) initialise(privateKey []byte, publicKey []byte, listen []string, ldgr *ledger.Ledger) error {

	log := logger.New("listener")
	lstn.log = log

	log.Info("initialising…")

	lstn.ldgr = ldgr
	lstn.limiter = rate.NewLimiter(listenerRateLimit, listenerRateBurst)

	// signalling channel
	push, pull, err := zmqutil.NewSignalPair(listenerSignal)
	if nil != err {
		return err
	}
	lstn.push = push
	lstn.pull = pull

	lstn.socket, err = zmqutil.NewBind(log, zmq.REP, listenerZapDomain, privateKey, publicKey, listen)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// Run - wait for incoming requests, process them and reply
func (lstn *listener) Run(args interface{}, shutdown <-chan struct{}) {

	log := lstn.log

	log.Info("starting…")

	go func() {
		poller := zmq.NewPoller()
		poller.Add(lstn.socket, zmq.POLLIN)
		poller.Add(lstn.pull, zmq.POLLIN)
	loop:
		for {
			sockets, _ := poller.Poll(-1)
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case lstn.socket:
					lstn.process(lstn.socket)
				case lstn.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		log.Info("shutting down")
		lstn.pull.Close()
		lstn.socket.Close()
		log.Info("stopped")
	}()

	// wait for shutdown
	log.Info("waiting…")
	<-shutdown
	log.Info("initiate shutdown")
	lstn.push.SendMessage("stop")
	lstn.push.Close()
}

// process one exchange and return the response to the client
func (lstn *listener) process(socket *zmq.Socket) {

	log := lstn.log

	data, err := socket.RecvMessageBytes(0)
	if nil != err {
		log.Errorf("receive error: %s", err)
		return
	}

	if len(data) < 1 {
		listenerSendError(socket, fault.ErrUnexpectedMessage)
		return
	}

	if !lstn.limiter.Allow() {
		listenerSendError(socket, fault.ErrConnectionLimit)
		return
	}

	fn := string(data[0])
	parameters := data[1:]

	log.Debugf("received message: %q", fn)

	switch fn {

	case "M": // submit one envelope
		if 1 != len(parameters) {
			listenerSendError(socket, fault.ErrUnexpectedMessage)
			return
		}
		env, err := messagebus.UnpackEnvelope(parameters[0])
		if nil != err {
			listenerSendError(socket, err)
			return
		}

		err = lstn.ldgr.HandleEnvelope(env)

		// the handler's direct replies belong to this exchange
		replies := globalData.messenger.(*rootMessenger).collectReplies()

		if nil != err {
			log.Warnf("handle %s  error: %s", env.Tag, err)
			listenerSendError(socket, err)
			return
		}

		frames := make([]interface{}, 0, 1+len(replies))
		frames = append(frames, "M")
		for _, reply := range replies {
			packed, err := reply.Pack()
			logger.PanicIfError("listener: pack reply", err)
			frames = append(frames, packed)
		}
		_, err = socket.SendMessage(frames...)
		if nil != err {
			log.Errorf("send error: %s", err)
		}
		log.Debugf("handled: %s  replies: %d", env.Tag, len(replies))

	case "I": // server information
		info := serverInfo{
			Version: version.Version,
			Chain:   lstn.ldgr.ChainID().String(),
			Cows:    lstn.ldgr.CowCount(),
		}
		result, err := json.Marshal(info)
		logger.PanicIfError("listener: pack info", err)
		_, err = socket.SendMessage("I", result)
		if nil != err {
			log.Errorf("send error: %s", err)
		}

	default:
		listenerSendError(socket, fault.ErrUnexpectedMessage)
	}
}

// send an error packet
func listenerSendError(socket *zmq.Socket, err error) {
	socket.SendMessage("E", err.Error())
}
