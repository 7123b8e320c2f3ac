// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/cow"
	"github.com/microcow/microcowd/cowrecord"
)

// the ownership index marker value
var ownedMarker = []byte{1}

// a name is available again once its cow has died
func (l *Ledger) isCowAliveAndExists(cowName string, now time.Time) bool {
	buffer := l.store.Cows.Get([]byte(cowName))
	if nil == buffer {
		return false
	}
	record, err := cowrecord.UnpackCow(buffer)
	logger.PanicIfError("ledger: unpack cow", err)
	return cow.IsAlive(record.LastFedTime, now)
}

// present in both the cow cache and the ownership index
func (l *Ledger) isCowOwnedAndExists(cowName string) bool {
	key := []byte(cowName)
	return l.store.Cows.Has(key) && l.store.Owned.Has(key)
}

// fetch a record whose presence was already established
//
// absence here is a defect, not a business condition
func (l *Ledger) mustGetCow(cowName string) *cowrecord.CowData {
	buffer := l.store.Cows.Get([]byte(cowName))
	if nil == buffer {
		logger.Panicf("ledger: missing cow record: %q", cowName)
	}
	record, err := cowrecord.UnpackCow(buffer)
	logger.PanicIfError("ledger: unpack cow", err)
	return record
}

// getCow - fetch a record, nil when absent
func (l *Ledger) getCow(cowName string) *cowrecord.CowData {
	buffer := l.store.Cows.Get([]byte(cowName))
	if nil == buffer {
		return nil
	}
	record, err := cowrecord.UnpackCow(buffer)
	logger.PanicIfError("ledger: unpack cow", err)
	return record
}

// create or overwrite a cow record
func (l *Ledger) saveCow(record *cowrecord.CowData) {
	buffer, err := record.Pack()
	logger.PanicIfError("ledger: pack cow", err)
	l.store.Cows.Put([]byte(record.Name), buffer)
}

// replicate a record and keep the derived ownership index aligned
// with its authoritative owner field
func (l *Ledger) replicateCow(record *cowrecord.CowData) {
	l.saveCow(record)

	key := []byte(record.Name)
	if record.Owner == l.account().Owner {
		l.store.Owned.Put(key, ownedMarker)
	} else if l.store.Owned.Has(key) {
		// a stale claim: another chain's cow now holds this name
		l.store.Owned.Delete(key)
		l.log.Infof("ownership dropped: %q now owned by %s", record.Name, record.Owner)
	}
}

// all cows in the ownership index that really belong to the account
func (l *Ledger) myCows() []*cowrecord.CowData {
	owner := l.account().Owner

	cursor := l.store.Owned.NewFetchCursor()
	elements, err := cursor.Fetch(0)
	logger.PanicIfError("ledger: fetch ownership", err)

	records := make([]*cowrecord.CowData, 0, len(elements))
	for _, element := range elements {
		record := l.getCow(string(element.Key))
		if nil == record {
			continue
		}
		if owner == record.Owner {
			records = append(records, record)
		}
	}
	return records
}
