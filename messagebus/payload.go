// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"encoding/json"

	"github.com/microcow/microcowd/cowrecord"
	"github.com/microcow/microcowd/identity"
)

// BuyCowPayload - request the root ledger to mint a cow
//
// carries everything needed to mint remotely or to compensate the
// already-applied debit locally on a bounce
type BuyCowPayload struct {
	Owner  identity.Owner      `json:"owner"`
	Params cowrecord.BuyParams `json:"params"`
}

// FeedCowPayload - forward an already-applied feed to the root ledger
type FeedCowPayload struct {
	Owner identity.Owner    `json:"owner"`
	Cow   cowrecord.CowData `json:"cow"`
}

// SellCowPayload - request the root ledger to buy back a cow
type SellCowPayload struct {
	Owner   identity.Owner `json:"owner"`
	CowName string         `json:"cow_name"`
}

// BuySuccessPayload - broadcast of a successful mint
type BuySuccessPayload struct {
	Cow cowrecord.CowData `json:"cow"`
}

// BuyFailurePayload - reply to the origin chain of a refused buy
//
// the conflicting record rides along so the origin can refresh its
// local cache
type BuyFailurePayload struct {
	Cow    cowrecord.CowData   `json:"cow"`
	Params cowrecord.BuyParams `json:"params"`
}

// SellSuccessPayload - broadcast of a completed sale
type SellSuccessPayload struct {
	CowName  string         `json:"cow_name"`
	CowOwner identity.Owner `json:"cow_owner"`
	Payment  uint64         `json:"payment"`
}

// SellFailurePayload - reply to the origin chain of a refused sale
type SellFailurePayload struct {
	CowName string `json:"cow_name"`
	Reason  string `json:"reason"`
}

// FeedSuccessPayload - broadcast of an accepted feed
type FeedSuccessPayload struct {
	Cow cowrecord.CowData `json:"cow"`
}

// SubscribePayload - ask the root ledger to bind the sender to the
// broadcast channel
type SubscribePayload struct {
}

// PackPayload - encode any payload for an envelope
func PackPayload(payload interface{}) json.RawMessage {
	buffer, err := json.Marshal(payload)
	if nil != err {
		// all payload types marshal cleanly; a failure is a defect
		panic("messagebus: pack payload: " + err.Error())
	}
	return buffer
}
