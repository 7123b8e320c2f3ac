// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/counter"
	"github.com/microcow/microcowd/ledger"
	"github.com/microcow/microcowd/version"
)

// Node - daemon and account information
type Node struct {
	log       *logger.L
	ledger    *ledger.Ledger
	startTime time.Time
	count     *counter.Counter
}

// InfoArguments - no parameters
type InfoArguments struct {
}

// InfoReply - daemon and account state
type InfoReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Chain       string `json:"chain"`
	Root        bool   `json:"root"`
	Owner       string `json:"owner"`
	Initialised bool   `json:"initialised"`
	Balance     uint64 `json:"balance"`
	Cows        int    `json:"cows"`
	Pending     int    `json:"pending"`
	Connections uint64 `json:"connections"`
}

// Info - the current daemon and account state
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {
	reply.Version = version.Version
	reply.Uptime = time.Since(node.startTime).String()
	reply.Chain = node.ledger.ChainID().String()
	reply.Root = node.ledger.IsRoot()
	reply.Owner = node.ledger.AccountOwner().String()
	reply.Initialised = node.ledger.IsInitialised()
	reply.Balance = node.ledger.Balance()
	reply.Cows = node.ledger.CowCount()
	reply.Pending = node.ledger.PendingCount()
	reply.Connections = node.count.Uint64()
	return nil
}
