// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cow - the cow lifecycle engine
//
// pure functions over a cow record and a point in time: aliveness,
// maturity, feeding tier classification and the appraisal price
//
// death is never stored: a cow not fed for more than its lifetime is
// simply reported dead by every reader, and its name becomes
// available for a fresh buy
package cow
