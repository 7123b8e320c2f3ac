// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// BroadcastChannel - the channel name used for cross-ledger success events
const BroadcastChannel = "cow_micro_chain_channel"

// InitialUserTokens - the balance granted to a user ledger at initialisation
const InitialUserTokens uint64 = 10000

// feeding windows, measured from the last fed time
//
// a cow fed within WellFed refuses the meal, one fed after Lifetime
// has already died
const (
	WellFed    = 6 * time.Hour
	OnTimeFeed = 12 * time.Hour
	LateFeed   = 18 * time.Hour
	Lifetime   = 24 * time.Hour
)

// MaturityAge - minimum age before a cow may be sold
const MaturityAge = 3 * 24 * time.Hour

// appraisal multipliers with two decimal digits of precision
// 100% is represented by 10000
const (
	OnTimeReward        int64 = 50  // +0.50% for each on-time feed
	LateReward          int64 = 25  // +0.25% for each late feed
	ForgotPenalty       int64 = 100 // -1.00% for each forgotten feed
	Precision100Percent int64 = 10000
)
