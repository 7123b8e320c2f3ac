// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the per-chain transaction state machine
//
// one Ledger instance is one chain: a single account, a replicated
// cow cache and two notification queues over its own store; the root
// ledger additionally mints cows, pays for sales and publishes all
// success events to the broadcast channel
//
// every cross-ledger effect is an asynchronous one-way message; the
// only commitments are the optimistic buy debit (compensated on
// bounce or explicit failure) and the root-side sale payment
package ledger
