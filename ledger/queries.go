// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/cow"
	"github.com/microcow/microcowd/cowrecord"
	"github.com/microcow/microcowd/identity"
)

// Balance - the current token balance
func (l *Ledger) Balance() uint64 {
	l.Lock()
	defer l.Unlock()
	return l.account().Balance
}

// AccountOwner - the owner bound at initialisation, zero value
// before that
func (l *Ledger) AccountOwner() identity.Owner {
	l.Lock()
	defer l.Unlock()
	return l.account().Owner
}

// IsInitialised - whether Initialise has run on this ledger
func (l *Ledger) IsInitialised() bool {
	l.Lock()
	defer l.Unlock()
	return l.account().IsInitialised
}

// Cow - the replicated record for a name, nil when unknown
func (l *Ledger) Cow(cowName string) *cowrecord.CowData {
	l.Lock()
	defer l.Unlock()
	return l.getCow(cowName)
}

// MyCows - all records this ledger holds an ownership entry for
func (l *Ledger) MyCows() []cowrecord.CowData {
	l.Lock()
	defer l.Unlock()

	records := []cowrecord.CowData{}
	for _, record := range l.myCows() {
		records = append(records, *record)
	}
	return records
}

// CowCount - the number of replicated records
func (l *Ledger) CowCount() int {
	l.Lock()
	defer l.Unlock()

	n := 0
	cursor := l.store.Cows.NewFetchCursor()
	items, err := cursor.Fetch(0)
	logger.PanicIfError("ledger: count cows", err)
	n = len(items)
	return n
}

// IsCowAlive - liveness of a named cow, false when unknown
func (l *Ledger) IsCowAlive(cowName string) bool {
	l.Lock()
	defer l.Unlock()
	return l.isCowAliveAndExists(cowName, l.now())
}

// IsCowUnderage - whether a named cow is below selling age, false
// when unknown
func (l *Ledger) IsCowUnderage(cowName string) bool {
	l.Lock()
	defer l.Unlock()

	record := l.getCow(cowName)
	if nil == record {
		return false
	}
	return cow.IsUnderage(record.BornTime, l.now())
}

// IsCowStillFull - whether a named cow would refuse feed, false
// when unknown
func (l *Ledger) IsCowStillFull(cowName string) bool {
	l.Lock()
	defer l.Unlock()

	record := l.getCow(cowName)
	if nil == record {
		return false
	}
	return cow.IsStillFull(record.LastFedTime, l.now())
}

// SellValue - the appraisal a sale would currently settle at, zero
// when unknown
func (l *Ledger) SellValue(cowName string) uint64 {
	l.Lock()
	defer l.Unlock()

	record := l.getCow(cowName)
	if nil == record {
		return 0
	}
	return cow.Appraisal(record)
}

// BuyNotifications - pending buy outcomes, oldest first
func (l *Ledger) BuyNotifications() []cowrecord.BuyNotification {
	l.Lock()
	defer l.Unlock()

	elements := l.store.BuyNotifications.Elements()

	notifications := make([]cowrecord.BuyNotification, 0, len(elements))
	for _, buffer := range elements {
		notification := cowrecord.BuyNotification{}
		err := json.Unmarshal(buffer, &notification)
		logger.PanicIfError("ledger: unpack buy notification", err)
		notifications = append(notifications, notification)
	}
	return notifications
}

// FrontBuyNotification - the oldest undelivered buy outcome, nil
// when the queue is empty
func (l *Ledger) FrontBuyNotification() *cowrecord.BuyNotification {
	l.Lock()
	defer l.Unlock()

	buffer := l.store.BuyNotifications.Front()
	if nil == buffer {
		return nil
	}
	notification := &cowrecord.BuyNotification{}
	err := json.Unmarshal(buffer, notification)
	logger.PanicIfError("ledger: unpack buy notification", err)
	return notification
}

// SellNotifications - pending sell outcomes, oldest first
func (l *Ledger) SellNotifications() []cowrecord.SellNotification {
	l.Lock()
	defer l.Unlock()

	elements := l.store.SellNotifications.Elements()

	notifications := make([]cowrecord.SellNotification, 0, len(elements))
	for _, buffer := range elements {
		notification := cowrecord.SellNotification{}
		err := json.Unmarshal(buffer, &notification)
		logger.PanicIfError("ledger: unpack sell notification", err)
		notifications = append(notifications, notification)
	}
	return notifications
}

// FrontSellNotification - the oldest undelivered sell outcome, nil
// when the queue is empty
func (l *Ledger) FrontSellNotification() *cowrecord.SellNotification {
	l.Lock()
	defer l.Unlock()

	buffer := l.store.SellNotifications.Front()
	if nil == buffer {
		return nil
	}
	notification := &cowrecord.SellNotification{}
	err := json.Unmarshal(buffer, notification)
	logger.PanicIfError("ledger: unpack sell notification", err)
	return notification
}
