// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/configuration"
	"github.com/microcow/microcowd/identity"
	"github.com/microcow/microcowd/ledger"
	"github.com/microcow/microcowd/peer"
	"github.com/microcow/microcowd/publish"
	"github.com/microcow/microcowd/rpc"
	"github.com/microcow/microcowd/storage"
	"github.com/microcow/microcowd/version"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version.Version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// chain identities
	chainID, err := identity.ChainIDFromString(theConfiguration.ChainID)
	if nil != err {
		log.Criticalf("chain_id: %q  error: %s", theConfiguration.ChainID, err)
		exitwithstatus.Message("chain_id: %q  error: %s", theConfiguration.ChainID, err)
	}
	rootChainID, err := identity.ChainIDFromString(theConfiguration.RootChainID)
	if nil != err {
		log.Criticalf("root_chain_id: %q  error: %s", theConfiguration.RootChainID, err)
		exitwithstatus.Message("root_chain_id: %q  error: %s", theConfiguration.RootChainID, err)
	}

	isRoot := configuration.NodeRoot == theConfiguration.Node
	if isRoot && chainID != rootChainID {
		exitwithstatus.Message("a root daemon must have chain_id equal to root_chain_id")
	}

	// general info
	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("node: %s", theConfiguration.Node)
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Peering", theConfiguration.Peering)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("initialise storage")
	store, err := storage.New(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Close()

	// the ledger state machine
	log.Info("initialise ledger")
	ldgr := ledger.New(logger.New("ledger"), store, chainID, rootChainID)

	// a fresh root daemon seeds its account before serving
	if isRoot && !ldgr.IsInitialised() {
		rootOwner, err := identity.OwnerFromString(theConfiguration.RootOwner)
		if nil != err {
			log.Criticalf("root_owner: %q  error: %s", theConfiguration.RootOwner, err)
			exitwithstatus.Message("root_owner: %q  error: %s", theConfiguration.RootOwner, err)
		}
		if err := ldgr.InitialiseRoot(rootOwner, theConfiguration.RootFloat); nil != err {
			log.Criticalf("root account error: %s", err)
			exitwithstatus.Message("root account error: %s", err)
		}
		log.Infof("root account created: owner: %s float: %d", rootOwner, theConfiguration.RootFloat)
	}

	// start up the publishing background processes, root only
	if isRoot {
		err = publish.Initialise(&theConfiguration.Publishing)
		if nil != err {
			log.Criticalf("publish initialise error: %s", err)
			exitwithstatus.Message("publish initialise error: %s", err)
		}
		defer publish.Finalise()
	}

	// start up the peering background processes
	// this also attaches the ledger to its messenger
	err = peer.Initialise(&theConfiguration.Peering, ldgr)
	if nil != err {
		log.Criticalf("peer initialise error: %s", err)
		exitwithstatus.Message("peer initialise error: %s", err)
	}
	defer peer.Finalise()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, ldgr)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
