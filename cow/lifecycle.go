// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cow

import (
	"time"

	"github.com/microcow/microcowd/constants"
	"github.com/microcow/microcowd/cowrecord"
)

// Tier - feeding tier enumeration
type Tier int

// feeding tiers by distance from the last fed time
const (
	Full   Tier = iota // ≤ 6h: refuses the meal
	OnTime Tier = iota // ≤ 12h
	Late   Tier = iota // ≤ 18h
	Forgot Tier = iota // > 18h
)

// IsAlive - a cow not fed for more than its lifetime is dead
func IsAlive(lastFedTime time.Time, now time.Time) bool {
	return now.Sub(lastFedTime) <= constants.Lifetime
}

// IsUnderage - a cow younger than the maturity age cannot be sold
func IsUnderage(bornTime time.Time, now time.Time) bool {
	return now.Sub(bornTime) < constants.MaturityAge
}

// IsStillFull - a cow fed within the well-fed window refuses the meal
func IsStillFull(lastFedTime time.Time, now time.Time) bool {
	return now.Sub(lastFedTime) <= constants.WellFed
}

// Classify - determine the feeding tier for a feed at "now"
func Classify(lastFedTime time.Time, now time.Time) Tier {
	distance := now.Sub(lastFedTime)
	switch {
	case distance <= constants.WellFed:
		return Full
	case distance <= constants.OnTimeFeed:
		return OnTime
	case distance <= constants.LateFeed:
		return Late
	default:
		return Forgot
	}
}

// Feed - apply one accepted feed to the stats counters
func Feed(stats cowrecord.FeedingStats, tier Tier) cowrecord.FeedingStats {
	switch tier {
	case OnTime:
		stats.OnTime += 1
	case Late:
		stats.Late += 1
	case Forgot:
		stats.Forgot += 1
	}
	return stats
}

// Appraisal - the sale price of a cow derived from its feeding history
//
// multiplier = 50·on_time + 25·late − 100·forgot against a scale of
// 10000 = 100%; a positive multiplier is an uncapped reward, a
// negative one is a penalty clamped at 100% so the price floors at 0
func Appraisal(cow *cowrecord.CowData) uint64 {
	basePrice := cow.Breed.Price()

	multiplier := int64(cow.FeedingStats.OnTime)*constants.OnTimeReward +
		int64(cow.FeedingStats.Late)*constants.LateReward -
		int64(cow.FeedingStats.Forgot)*constants.ForgotPenalty

	isReward := true
	if multiplier < 0 {
		isReward = false
		multiplier = -multiplier
		// the penalty must not exceed 100%
		if multiplier > constants.Precision100Percent {
			multiplier = constants.Precision100Percent
		}
	}

	adjustment := basePrice * uint64(multiplier) / uint64(constants.Precision100Percent)

	if !isReward {
		return basePrice - adjustment
	}
	return basePrice + adjustment
}
