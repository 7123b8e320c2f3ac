// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/microcow/microcowd/fault"
)

var (
	ErrRequiredBreed             = fault.InvalidError("cow breed is required")
	ErrRequiredCowName           = fault.InvalidError("cow name is required")
	ErrRequiredNotificationQueue = fault.InvalidError("notification queue is required")
	ErrRequiredSigner            = fault.InvalidError("signer is required")
)

// signer is required by every play command
func checkSigner(signer string) (string, error) {
	if "" == signer {
		return "", ErrRequiredSigner
	}
	return signer, nil
}

// cow name is required
func checkCowName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredCowName
	}
	return name, nil
}

// breed is required, validation happens on the daemon
func checkBreed(breed string) (string, error) {
	if "" == breed {
		return "", ErrRequiredBreed
	}
	return breed, nil
}

// cow id is optional, a random one is generated when absent
func checkCowId(id string) (string, error) {
	if "" != id {
		return id, nil
	}
	buffer := make([]byte, 16)
	if _, err := rand.Read(buffer); nil != err {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}
