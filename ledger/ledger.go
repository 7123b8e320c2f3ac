// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/cow"
	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/identity"
	"github.com/microcow/microcowd/messagebus"
	"github.com/microcow/microcowd/storage"
)

// Ledger - one chain
//
// a single-threaded actor: the mutex admits one operation or one
// inbound envelope at a time, each processed to completion including
// any resulting sends
type Ledger struct {
	sync.Mutex

	log         *logger.L
	store       *storage.Store
	messenger   messagebus.Messenger
	chainID     identity.ChainID
	rootChainID identity.ChainID
	gender      *cow.GenderSource

	// root ledger only: chains bound to the broadcast channel,
	// duplicates are harmless so entries never expire
	subscribers *gocache.Cache

	// injectable clock
	nowFunc func() time.Time
}

// New - create a ledger over its store
//
// the messenger is attached separately as transports need the ledger
// as their inbound handler first
func New(log *logger.L, store *storage.Store, chainID identity.ChainID, rootChainID identity.ChainID) *Ledger {
	return &Ledger{
		log:         log,
		store:       store,
		chainID:     chainID,
		rootChainID: rootChainID,
		gender:      cow.NewGenderSource(),
		subscribers: gocache.New(gocache.NoExpiration, 0),
		nowFunc:     time.Now,
	}
}

// Attach - connect the outbound side of the transport
func (l *Ledger) Attach(messenger messagebus.Messenger) {
	l.messenger = messenger
}

// IsRoot - is this the root ledger
func (l *Ledger) IsRoot() bool {
	return l.chainID == l.rootChainID
}

// ChainID - the chain this ledger serves
func (l *Ledger) ChainID() identity.ChainID {
	return l.chainID
}

// current time through the injectable clock
func (l *Ledger) now() time.Time {
	return l.nowFunc()
}

// gameplay is for user ledgers only
func (l *Ledger) guardRootPlay() error {
	if l.IsRoot() {
		return fault.ErrRootCannotPlay
	}
	return nil
}

// the exposed authenticated-signer check: the transport has already
// verified the caller, here the claim must match the request
func (l *Ledger) guardSigner(signer identity.Owner, owner identity.Owner) error {
	if signer != owner {
		return fault.ErrNotAuthenticated
	}
	return nil
}

// InitialiseRoot - set up the root ledger's account
//
// performed once at daemon start on the root chain, the float is the
// balance the root uses to pay for sales
func (l *Ledger) InitialiseRoot(owner identity.Owner, float uint64) error {
	l.Lock()
	defer l.Unlock()

	if !l.IsRoot() {
		return fault.ErrWrongChain
	}
	if l.account().IsInitialised {
		return fault.ErrAlreadyInitialised
	}
	l.saveAccount(AccountData{
		Owner:         owner,
		ChainID:       l.chainID,
		Balance:       float,
		IsRoot:        true,
		IsInitialised: true,
	})
	l.log.Infof("root ledger initialised: owner: %s", owner)
	return nil
}
