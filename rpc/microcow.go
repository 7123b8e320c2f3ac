// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/cowrecord"
	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/identity"
	"github.com/microcow/microcowd/ledger"
)

// MicroCow - the play operations
//
// every call carries the signer account; a user daemon serves one
// account so the signer must match the ledger owner, the same rule
// the ledger itself enforces
type MicroCow struct {
	log    *logger.L
	ledger *ledger.Ledger
}

// InitialiseArguments - set up the account of this ledger
type InitialiseArguments struct {
	Signer string `json:"signer"`
}

// InitialiseReply - the starting balance
type InitialiseReply struct {
	Balance uint64 `json:"balance"`
}

// Initialise - create the account and subscribe to broadcasts
func (mc *MicroCow) Initialise(arguments *InitialiseArguments, reply *InitialiseReply) error {
	signer, err := identity.OwnerFromString(arguments.Signer)
	if nil != err {
		return err
	}
	if err := mc.ledger.Initialise(signer); nil != err {
		return err
	}
	reply.Balance = mc.ledger.Balance()
	return nil
}

// SubscribeArguments - re-request the broadcast subscription
type SubscribeArguments struct {
	Signer string `json:"signer"`
}

// BoolReply - simple acknowledgement
type BoolReply struct {
	OK bool `json:"ok"`
}

// Subscribe - bind this chain to the broadcast channel again
func (mc *MicroCow) Subscribe(arguments *SubscribeArguments, reply *BoolReply) error {
	signer, err := identity.OwnerFromString(arguments.Signer)
	if nil != err {
		return err
	}
	if err := mc.ledger.Subscribe(signer); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// BuyArguments - purchase one new cow
type BuyArguments struct {
	Signer string `json:"signer"`
	Owner  string `json:"owner"`
	Id     string `json:"id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
}

// BuyReply - the balance after the optimistic debit
type BuyReply struct {
	Balance uint64 `json:"balance"`
}

// Buy - debit the price and submit the buy to the root ledger
func (mc *MicroCow) Buy(arguments *BuyArguments, reply *BuyReply) error {
	mc.log.Infof("buy: %q breed: %q", arguments.Name, arguments.Breed)

	signer, owner, err := signerAndOwner(arguments.Signer, arguments.Owner)
	if nil != err {
		return err
	}
	breed, err := cowrecord.BreedFromString(arguments.Breed)
	if nil != err {
		return err
	}
	if err := mc.ledger.BuyCow(signer, owner, arguments.Name, arguments.Id, breed); nil != err {
		return err
	}
	reply.Balance = mc.ledger.Balance()
	return nil
}

// FeedArguments - feed one owned cow
type FeedArguments struct {
	Signer string `json:"signer"`
	Owner  string `json:"owner"`
	Name   string `json:"name"`
}

// Feed - record a meal for an owned cow
func (mc *MicroCow) Feed(arguments *FeedArguments, reply *BoolReply) error {
	mc.log.Infof("feed: %q", arguments.Name)

	signer, owner, err := signerAndOwner(arguments.Signer, arguments.Owner)
	if nil != err {
		return err
	}
	if err := mc.ledger.FeedCow(signer, owner, arguments.Name); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// SellArguments - sell one owned cow back to the root ledger
type SellArguments struct {
	Signer string `json:"signer"`
	Owner  string `json:"owner"`
	Name   string `json:"name"`
}

// Sell - submit the sale of a mature cow
func (mc *MicroCow) Sell(arguments *SellArguments, reply *BoolReply) error {
	mc.log.Infof("sell: %q", arguments.Name)

	signer, owner, err := signerAndOwner(arguments.Signer, arguments.Owner)
	if nil != err {
		return err
	}
	record := mc.ledger.Cow(arguments.Name)
	if nil == record {
		return fault.ErrCowNotFound
	}
	if err := mc.ledger.SellCow(signer, owner, arguments.Name, record.BornTime); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// BuryArguments - clear all dead cows from the local records
type BuryArguments struct {
	Signer string `json:"signer"`
}

// Bury - remove every dead cow and its ownership entry
func (mc *MicroCow) Bury(arguments *BuryArguments, reply *BoolReply) error {
	signer, err := identity.OwnerFromString(arguments.Signer)
	if nil != err {
		return err
	}
	if err := mc.ledger.BuryDeadCows(signer); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// NotificationArguments - drop the oldest notification
type NotificationArguments struct {
	Signer string `json:"signer"`
}

// DeleteBuyNotification - drop the oldest buy outcome
func (mc *MicroCow) DeleteBuyNotification(arguments *NotificationArguments, reply *BoolReply) error {
	signer, err := identity.OwnerFromString(arguments.Signer)
	if nil != err {
		return err
	}
	if err := mc.ledger.DeleteBuyNotification(signer); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// DeleteSellNotification - drop the oldest sell outcome
func (mc *MicroCow) DeleteSellNotification(arguments *NotificationArguments, reply *BoolReply) error {
	signer, err := identity.OwnerFromString(arguments.Signer)
	if nil != err {
		return err
	}
	if err := mc.ledger.DeleteSellNotification(signer); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// parse the signer and owner fields of a request
func signerAndOwner(signerText string, ownerText string) (identity.Owner, identity.Owner, error) {
	signer, err := identity.OwnerFromString(signerText)
	if nil != err {
		return identity.Owner{}, identity.Owner{}, err
	}
	owner, err := identity.OwnerFromString(ownerText)
	if nil != err {
		return identity.Owner{}, identity.Owner{}, err
	}
	return signer, owner, nil
}
