// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON-RPC over TLS access to one daemon's ledger
//
// the services expose the play operations and the query surface;
// all state changes still flow through the ledger so the single
// writer rule is preserved
package rpc

import (
	"crypto/tls"
	"sync"
	"time"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/counter"
	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/ledger"
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// globals
type rpcData struct {
	sync.RWMutex

	log *logger.L

	listener *listener.MultiListener

	connectionCount counter.Counter

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC server
func Initialise(configuration *Configuration, ldgr *ledger.Ledger) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid maximum connection limit: %d", configuration.MaximumConnections)
		return fault.ErrConnectionLimit
	}

	keyPair, err := tls.LoadX509KeyPair(configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		log.Errorf("load keypair: %q, %q  error: %s", configuration.Certificate, configuration.PrivateKey, err)
		return err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	limiter := listener.NewLimiter(configuration.MaximumConnections)

	ml, err := listener.NewMultiListener("rpc", configuration.Listen, tlsConfiguration, limiter, Callback)
	if nil != err {
		log.Errorf("listen addresses: %v  error: %s", configuration.Listen, err)
		return err
	}
	globalData.listener = ml

	argument := &ServerArgument{
		Log:       log,
		Ledger:    ldgr,
		StartTime: time.Now().UTC(),
		Count:     &globalData.connectionCount,
	}
	ml.Start(argument)

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop the RPC server
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.listener.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
