// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RejectedError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrAlreadySubscribed            = ExistsError("already subscribed")
	ErrCannotReviveCow              = InvalidError("cannot revive a cow that is still owned")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrChainAlreadyRegistered       = ExistsError("chain already registered")
	ErrConnectionLimit              = ProcessError("connection limit exceeded")
	ErrCowIsDead                    = InvalidError("cow is dead")
	ErrCowIsNotAvailable            = ExistsError("cow is alive and cannot be bought")
	ErrCowIsStillFull               = InvalidError("cow is still full")
	ErrCowIsUnderage                = InvalidError("cow is too young to be sold")
	ErrCowNotFound                  = NotFoundError("cow not found")
	ErrCowNotOwned                  = NotFoundError("cow is not owned by this account")
	ErrInsufficientBalance          = RejectedError("insufficient balance")
	ErrInvalidBreed                 = InvalidError("invalid breed")
	ErrInvalidChainID               = InvalidError("invalid chain id")
	ErrInvalidGender                = InvalidError("invalid gender")
	ErrInvalidIdentity              = InvalidError("invalid identity")
	ErrInvalidPrivateKeyFile        = InvalidError("invalid private key file")
	ErrInvalidPublicKeyFile         = InvalidError("invalid public key file")
	ErrInvalidStructPointer         = InvalidError("invalid struct pointer")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrKeyLength                    = LengthError("key length is invalid")
	ErrMessageUndeliverable         = ProcessError("message undeliverable")
	ErrNotAuthenticated             = InvalidError("signer does not match request owner")
	ErrNotInitialised               = NotFoundError("not initialised")
	ErrNotSubscribed                = NotFoundError("not subscribed")
	ErrRootCannotPlay               = InvalidError("root ledger cannot play")
	ErrUnexpectedMessage            = ProcessError("unexpected message tag")
	ErrWrongChain                   = InvalidError("message arrived on the wrong chain")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RejectedError) Error() string { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRejected(e error) bool { _, ok := e.(RejectedError); return ok }
