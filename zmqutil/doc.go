// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqutil - shared ZeroMQ socket helpers
//
// CURVE key file handling, the one-time authentication handler,
// server socket construction and a reconnecting client wrapper used
// by the publish and peer modules
package zmqutil
