// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cowrecord - the record types shared by all ledgers
//
// cow records, buy parameters and the queued notifications are
// stored in the ledger pools and carried verbatim inside
// cross-ledger messages, so one packed form serves both uses
package cowrecord
