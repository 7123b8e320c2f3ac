// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/microcow/microcowd/fault"
)

// sizes of the raw values
const (
	IdentitySize   = 32
	checksumLength = 4
)

// Owner - the public identity of an account
type Owner [IdentitySize]byte

// ChainID - the identity of a ledger chain
type ChainID [IdentitySize]byte

// base58 of value followed by a truncated sha3 checksum
func encode(buffer []byte) string {
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// reverse of encode, verifying the checksum
func decode(s string) ([]byte, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return nil, err
	}
	if len(buffer) != IdentitySize+checksumLength {
		return nil, fault.ErrKeyLength
	}
	checksum := sha3.Sum256(buffer[:IdentitySize])
	for i := 0; i < checksumLength; i += 1 {
		if checksum[i] != buffer[IdentitySize+i] {
			return nil, fault.ErrInvalidIdentity
		}
	}
	return buffer[:IdentitySize], nil
}

// OwnerFromString - parse the base58 representation of an owner
func OwnerFromString(s string) (Owner, error) {
	var owner Owner
	buffer, err := decode(s)
	if nil != err {
		return owner, fault.ErrInvalidIdentity
	}
	copy(owner[:], buffer)
	return owner, nil
}

// ChainIDFromString - parse the base58 representation of a chain id
func ChainIDFromString(s string) (ChainID, error) {
	var chainID ChainID
	buffer, err := decode(s)
	if nil != err {
		return chainID, fault.ErrInvalidChainID
	}
	copy(chainID[:], buffer)
	return chainID, nil
}

// String - base58 encoding of an owner
func (owner Owner) String() string {
	return encode(owner[:])
}

// IsZero - an all zero owner denotes "no owner"
func (owner Owner) IsZero() bool {
	return Owner{} == owner
}

// MarshalText - convert an owner to its base58 JSON form
func (owner Owner) MarshalText() ([]byte, error) {
	return []byte(owner.String()), nil
}

// UnmarshalText - convert base58 JSON form back to an owner
func (owner *Owner) UnmarshalText(s []byte) error {
	o, err := OwnerFromString(string(s))
	if nil != err {
		return err
	}
	*owner = o
	return nil
}

// String - base58 encoding of a chain id
func (chainID ChainID) String() string {
	return encode(chainID[:])
}

// IsZero - an all zero chain id is invalid
func (chainID ChainID) IsZero() bool {
	return ChainID{} == chainID
}

// MarshalText - convert a chain id to its base58 JSON form
func (chainID ChainID) MarshalText() ([]byte, error) {
	return []byte(chainID.String()), nil
}

// UnmarshalText - convert base58 JSON form back to a chain id
func (chainID *ChainID) UnmarshalText(s []byte) error {
	c, err := ChainIDFromString(string(s))
	if nil != err {
		return err
	}
	*chainID = c
	return nil
}
