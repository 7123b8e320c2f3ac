// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/background"
	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/ledger"
	"github.com/microcow/microcowd/messagebus"
	"github.com/microcow/microcowd/zmqutil"
)

// timeout for REQ/REP exchanges with the root
const reqTimeout = 30 * time.Second

// Connection - an endpoint and the server's public key
type Connection struct {
	Address   string `gluamapper:"address" json:"address"`
	PublicKey string `gluamapper:"public_key" json:"public_key"`
}

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	PublicKey  string     `gluamapper:"public_key" json:"public_key"`
	PrivateKey string     `gluamapper:"private_key" json:"private_key"`
	Listen     []string   `gluamapper:"listen" json:"listen"`       // root daemon only
	Connect    Connection `gluamapper:"connect" json:"connect"`     // user daemon: root request endpoint
	Subscribe  Connection `gluamapper:"subscribe" json:"subscribe"` // user daemon: root broadcast endpoint
}

// globals for background processes
type peerData struct {
	sync.RWMutex

	log *logger.L

	lstn listener
	conn connector
	sbsc subscriber

	messenger messagebus.Messenger

	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData peerData

// Initialise - start the transport for one daemon
//
// the ledger is attached to its messenger before any socket is
// served so an early inbound request never sees a detached ledger
func Initialise(configuration *Configuration, ldgr *ledger.Ledger) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("peer")
	globalData.log.Info("starting…")

	if err := zmqutil.StartAuthentication(); nil != err {
		globalData.log.Errorf("zmq authentication: %s", err)
		return err
	}

	// read the keys
	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		globalData.log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
		return err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		globalData.log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
		return err
	}

	processes := background.Processes{}

	if ldgr.IsRoot() {
		globalData.messenger = newRootMessenger(ldgr.ChainID())
		ldgr.Attach(globalData.messenger)

		if err := globalData.lstn.initialise(privateKey, publicKey, configuration.Listen, ldgr); nil != err {
			return err
		}
		processes = append(processes, &globalData.lstn)

	} else {
		clientMessenger, err := newClientMessenger(ldgr.ChainID(), privateKey, publicKey, configuration)
		if nil != err {
			return err
		}
		globalData.messenger = clientMessenger
		ldgr.Attach(globalData.messenger)

		if err := globalData.conn.initialise(clientMessenger, ldgr); nil != err {
			return err
		}
		if err := globalData.sbsc.initialise(privateKey, publicKey, &configuration.Subscribe, ldgr); nil != err {
			return err
		}
		processes = append(processes, &globalData.conn, &globalData.sbsc)
	}

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
