// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/logger"
)

// PendingState - progress of a tracked commitment
type PendingState int

// possible pending states
const (
	PendingSent        PendingState = iota
	PendingCommitted   PendingState = iota
	PendingCompensated PendingState = iota
)

// PendingEntry - one in-flight tracked transaction
//
// written when the envelope leaves, removed when the outcome
// arrives; an entry lingering here is an orphaned commitment
// awaiting an eventual bounce, there is no timeout sweep
type PendingEntry struct {
	CowName string       `json:"cow_name"`
	Amount  uint64       `json:"amount"`
	State   PendingState `json:"state"`
}

// envelope id to pool key
func pendingKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// record a freshly sent commitment
func (l *Ledger) addPending(id uint64, name string, amount uint64) {
	entry := PendingEntry{
		CowName: name,
		Amount:  amount,
		State:   PendingSent,
	}
	buffer, err := json.Marshal(entry)
	logger.PanicIfError("ledger: pack pending entry", err)
	l.store.Pending.Put(pendingKey(id), buffer)
}

// resolve a commitment, no-op when the id is unknown
//
// only the origin ledger of a tracked envelope holds its entry, so
// broadcast receivers resolve nothing
func (l *Ledger) resolvePending(id uint64, state PendingState) {
	if 0 == id {
		return
	}
	key := pendingKey(id)
	if !l.store.Pending.Has(key) {
		return
	}
	l.store.Pending.Delete(key)
	l.log.Debugf("pending: %d resolved: %d", id, state)
}

// PendingCount - number of unresolved tracked commitments
func (l *Ledger) PendingCount() int {
	cursor := l.store.Pending.NewFetchCursor()
	elements, err := cursor.Fetch(0)
	logger.PanicIfError("ledger: fetch pending", err)
	return len(elements)
}
