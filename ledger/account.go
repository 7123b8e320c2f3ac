// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/identity"
)

// AccountData - the one account record of a ledger
type AccountData struct {
	Owner         identity.Owner   `json:"owner"` // base58
	ChainID       identity.ChainID `json:"chain_id"`
	Balance       uint64           `json:"balance"`
	IsRoot        bool             `json:"is_root"`
	IsInitialised bool             `json:"is_initialised"`
}

// the fixed key of the account record inside its pool
var accountKey = []byte("account")

// read the account record, zero value when not initialised
func (l *Ledger) account() AccountData {
	account := AccountData{}
	buffer := l.store.Account.Get(accountKey)
	if nil == buffer {
		return account
	}
	err := json.Unmarshal(buffer, &account)
	logger.PanicIfError("ledger: unpack account", err)
	return account
}

// write the account record
func (l *Ledger) saveAccount(account AccountData) {
	buffer, err := json.Marshal(account)
	logger.PanicIfError("ledger: pack account", err)
	l.store.Account.Put(accountKey, buffer)
}

// debit - subtract from the balance, fails closed
func (l *Ledger) debit(amount uint64) error {
	account := l.account()
	if account.Balance < amount {
		return fault.ErrInsufficientBalance
	}
	account.Balance -= amount
	l.saveAccount(account)
	return nil
}

// credit - add to the balance, saturating
func (l *Ledger) credit(amount uint64) {
	account := l.account()
	if account.Balance > math.MaxUint64-amount {
		account.Balance = math.MaxUint64
	} else {
		account.Balance += amount
	}
	l.saveAccount(account)
}
