// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/cowrecord"
	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/ledger"
)

// Cow - read access to the herd and the notification queues
type Cow struct {
	log    *logger.L
	ledger *ledger.Ledger
}

// CowArguments - select one cow by name
type CowArguments struct {
	Name string `json:"name"`
}

// CowReply - one replicated record with its derived state
type CowReply struct {
	Cow       cowrecord.CowData `json:"cow"`
	Alive     bool              `json:"alive"`
	Underage  bool              `json:"underage"`
	StillFull bool              `json:"still_full"`
	SellValue uint64            `json:"sell_value"`
}

// Get - one cow and its derived lifecycle state
func (c *Cow) Get(arguments *CowArguments, reply *CowReply) error {
	record := c.ledger.Cow(arguments.Name)
	if nil == record {
		return fault.ErrCowNotFound
	}
	reply.Cow = *record
	reply.Alive = c.ledger.IsCowAlive(arguments.Name)
	reply.Underage = c.ledger.IsCowUnderage(arguments.Name)
	reply.StillFull = c.ledger.IsCowStillFull(arguments.Name)
	reply.SellValue = c.ledger.SellValue(arguments.Name)
	return nil
}

// ListArguments - no parameters
type ListArguments struct {
}

// ListReply - every cow this account owns
type ListReply struct {
	Cows []cowrecord.CowData `json:"cows"`
}

// List - the owned herd
func (c *Cow) List(arguments *ListArguments, reply *ListReply) error {
	reply.Cows = c.ledger.MyCows()
	return nil
}

// CountReply - the number of replicated records
type CountReply struct {
	Count int `json:"count"`
}

// Count - size of the local replica, not just owned cows
func (c *Cow) Count(arguments *ListArguments, reply *CountReply) error {
	reply.Count = c.ledger.CowCount()
	return nil
}

// NotificationsReply - undelivered transaction outcomes
type NotificationsReply struct {
	Buy  []cowrecord.BuyNotification  `json:"buy"`
	Sell []cowrecord.SellNotification `json:"sell"`
}

// Notifications - all undelivered buy and sell outcomes, oldest
// first
func (c *Cow) Notifications(arguments *ListArguments, reply *NotificationsReply) error {
	reply.Buy = c.ledger.BuyNotifications()
	reply.Sell = c.ledger.SellNotifications()
	return nil
}
