// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - envelopes and queues for all ledger-to-ledger
// message packets
//
// messages are one-way: a ledger sends to the root ledger, the root
// ledger replies to a single origin chain or publishes to the
// broadcast channel; tracked envelopes additionally promise a bounce
// back to the origin if delivery or remote execution fails
package messagebus
