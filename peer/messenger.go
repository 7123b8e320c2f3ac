// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"encoding/hex"
	"sync"
	"sync/atomic"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/identity"
	"github.com/microcow/microcowd/messagebus"
	"github.com/microcow/microcowd/publish"
	"github.com/microcow/microcowd/zmqutil"
)

const outboundQueueSize = 1000

// rootMessenger - outbound side of the root ledger
//
// direct replies produced while an inbound request is being handled
// are collected by the listener and ride back on the same exchange;
// channel events go out through the publish module
type rootMessenger struct {
	sync.Mutex

	chainID identity.ChainID
	outbox  []*messagebus.Envelope
}

func newRootMessenger(chainID identity.ChainID) *rootMessenger {
	return &rootMessenger{
		chainID: chainID,
	}
}

// Send - queue a direct reply for the exchange in progress
func (m *rootMessenger) Send(env *messagebus.Envelope) {
	env.From = m.chainID

	m.Lock()
	m.outbox = append(m.outbox, env)
	m.Unlock()
}

// Publish - queue a channel event for broadcast
func (m *rootMessenger) Publish(env *messagebus.Envelope) {
	env.From = m.chainID
	publish.Put(env)
}

// Subscribe - a PUB socket needs no server side registration, the
// subscriber filters by topic; the ledger keeps its own registry
func (m *rootMessenger) Subscribe(chain identity.ChainID, channel string) {
}

// take every queued reply, leaving the outbox empty
func (m *rootMessenger) collectReplies() []*messagebus.Envelope {
	m.Lock()
	replies := m.outbox
	m.outbox = nil
	m.Unlock()
	return replies
}

// clientMessenger - outbound side of a user ledger
//
// envelopes are queued for the connector which performs the actual
// REQ/REP exchange with the root
type clientMessenger struct {
	log     *logger.L
	chainID identity.ChainID
	client  *zmqutil.Client
	out     chan *messagebus.Envelope
	nextID  uint64
}

func newClientMessenger(chainID identity.ChainID, privateKey []byte, publicKey []byte, configuration *Configuration) (*clientMessenger, error) {

	log := logger.New("messenger")

	client, err := zmqutil.NewClient(zmq.REQ, privateKey, publicKey, reqTimeout)
	if nil != err {
		return nil, err
	}

	serverPublicKey, err := decodePublicKey(configuration.Connect.PublicKey)
	if nil != err {
		log.Errorf("connect public key: %q  error: %s", configuration.Connect.PublicKey, err)
		return nil, err
	}

	if err := client.Connect(configuration.Connect.Address, serverPublicKey); nil != err {
		log.Errorf("connect: %q  error: %s", configuration.Connect.Address, err)
		return nil, err
	}

	return &clientMessenger{
		log:     log,
		chainID: chainID,
		client:  client,
		out:     make(chan *messagebus.Envelope, outboundQueueSize),
	}, nil
}

// Send - stamp and queue one directed envelope
//
// the envelope id is assigned here so the caller can reference the
// message before the exchange happens; a full queue drops the
// envelope and the connector's bounce path never sees it, so the
// drop is bounced immediately instead
func (m *clientMessenger) Send(env *messagebus.Envelope) {
	env.ID = atomic.AddUint64(&m.nextID, 1)
	env.From = m.chainID

	select {
	case m.out <- env:
	default:
		m.log.Errorf("outbound queue full, bouncing: %s", env.Tag)
		if env.Tracked {
			go globalData.conn.bounce(env)
		}
	}
}

// Publish - only the root ledger broadcasts
func (m *clientMessenger) Publish(env *messagebus.Envelope) {
	m.log.Errorf("user ledger cannot publish: %s", env.Tag)
}

// Subscribe - the subscription is held by the SUB socket which is
// configured at startup
func (m *clientMessenger) Subscribe(chain identity.ChainID, channel string) {
}

// server public keys are hex encoded in the configuration file
func decodePublicKey(key string) ([]byte, error) {
	return hex.DecodeString(key)
}
