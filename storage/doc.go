// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store of one ledger
//
// a single LevelDB database split into prefixed pools:
//
//	Account           A    the one account record
//	Cows              C    cow name → packed cow record
//	Owned             O    cow name → marker (ownership index)
//	BuyNotifications  B    FIFO queue of buy outcomes
//	SellNotifications S    FIFO queue of sell outcomes
//	Pending           P    envelope id → pending transaction entry
//	TestData          Z    used by tests only
//
// every ledger owns its own Store instance: chains never share a
// database
package storage
