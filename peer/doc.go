// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer - the network transport between ledgers
//
// a root daemon runs the request listener: user daemons submit
// directed envelopes over CURVE secured REQ/REP exchanges and any
// direct replies the root produces ride back on the same exchange
//
// a user daemon runs the connector, draining its ledger's outbound
// queue onto the root listener, and the subscriber, receiving the
// root's channel broadcasts; an exchange that fails for a tracked
// envelope is turned into a local bounce so the optimistic debit is
// always compensated
package peer
