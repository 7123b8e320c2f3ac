// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cowrecord

import (
	"encoding/json"
	"time"

	"github.com/microcow/microcowd/identity"
)

// FeedingStats - per-cow feeding history counters
//
// counters only ever increase
type FeedingStats struct {
	OnTime uint64 `json:"on_time"`
	Late   uint64 `json:"late"`
	Forgot uint64 `json:"forgot"`
}

// CowData - one cow as stored on every ledger
//
// Name is the primary key, Owner is the authoritative ownership
// field replicated by the success broadcasts
type CowData struct {
	Id           string         `json:"id"`
	Name         string         `json:"name"`
	Breed        Breed          `json:"breed"`
	Gender       Gender         `json:"gender"`
	BornTime     time.Time      `json:"born_time"`
	LastFedTime  time.Time      `json:"last_fed_time"`
	FeedingStats FeedingStats   `json:"feeding_stats"`
	Owner        identity.Owner `json:"owner"` // base58
}

// BuyParams - the full parameters of an in-flight buy
//
// the message carries everything needed to mint the cow remotely or
// to compensate the optimistic debit locally
type BuyParams struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Breed  Breed  `json:"breed"`
	Gender Gender `json:"gender"`
	Price  uint64 `json:"price"`
}

// BuyNotification - queued outcome of a buy the account initiated
type BuyNotification struct {
	CowName string `json:"cow_name"`
	Success bool   `json:"success"`
}

// SellNotification - queued outcome of a sell the account initiated
type SellNotification struct {
	CowName       string `json:"cow_name"`
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason"`
}

// Pack - encode a cow record for storage or transmission
func (cow *CowData) Pack() ([]byte, error) {
	return json.Marshal(cow)
}

// UnpackCow - decode a previously packed cow record
func UnpackCow(buffer []byte) (*CowData, error) {
	cow := &CowData{}
	if err := json.Unmarshal(buffer, cow); nil != err {
		return nil, err
	}
	return cow, nil
}
