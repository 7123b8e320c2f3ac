// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/constants"
	"github.com/microcow/microcowd/cow"
	"github.com/microcow/microcowd/cowrecord"
	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/identity"
	"github.com/microcow/microcowd/messagebus"
)

// Initialise - set up a user ledger's account with its starting
// balance and subscribe it to the broadcast channel
func (l *Ledger) Initialise(signer identity.Owner) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}
	if l.account().IsInitialised {
		return fault.ErrAlreadyInitialised
	}

	l.subscribe()

	l.saveAccount(AccountData{
		Owner:         signer,
		ChainID:       l.chainID,
		Balance:       constants.InitialUserTokens,
		IsRoot:        false,
		IsInitialised: true,
	})
	l.log.Infof("ledger initialised: owner: %s", signer)
	return nil
}

// Subscribe - bind this chain to the broadcast channel
//
// fire-and-forget and idempotent, subscribing twice is harmless
func (l *Ledger) Subscribe(signer identity.Owner) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}
	l.subscribe()
	return nil
}

// queue the Subscribe message to the root ledger
func (l *Ledger) subscribe() {
	env := &messagebus.Envelope{
		Tag:     messagebus.TagSubscribe,
		To:      l.rootChainID,
		Tracked: true,
		Payload: messagebus.PackPayload(messagebus.SubscribePayload{}),
	}
	l.messenger.Send(env)
}

// BuyCow - start a buy transaction
//
// the debit applied here is the commitment: it travels only as the
// price inside the tracked message and is credited back on a bounce
// or an explicit refusal
func (l *Ledger) BuyCow(signer identity.Owner, owner identity.Owner, cowName string, cowId string, breed cowrecord.Breed) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}
	if err := l.guardSigner(signer, owner); nil != err {
		return err
	}
	if !breed.IsValid() {
		return fault.ErrInvalidBreed
	}

	now := l.now()

	// a name whose cow is alive cannot be bought
	if l.isCowAliveAndExists(cowName, now) {
		return fault.ErrCowIsNotAvailable
	}

	// a dead cow still marked as owned here cannot be revived
	if l.store.Owned.Has([]byte(cowName)) {
		return fault.ErrCannotReviveCow
	}

	gender := l.gender.Draw(now)

	// verify and debit in one step, fails closed
	price := breed.Price()
	if err := l.debit(price); nil != err {
		return err
	}

	params := cowrecord.BuyParams{
		Id:     cowId,
		Name:   cowName,
		Breed:  breed,
		Gender: gender,
		Price:  price,
	}
	env := &messagebus.Envelope{
		Tag:     messagebus.TagBuyCow,
		To:      l.rootChainID,
		Tracked: true,
		Payload: messagebus.PackPayload(messagebus.BuyCowPayload{
			Owner:  owner,
			Params: params,
		}),
	}
	l.messenger.Send(env)
	l.addPending(env.ID, cowName, price)

	l.log.Infof("buy sent: %q breed: %s price: %d", cowName, breed, price)
	return nil
}

// FeedCow - feed an owned cow
//
// the feed is applied locally first and merely forwarded to the root
// ledger; there is no compensation path as no balance is involved
func (l *Ledger) FeedCow(signer identity.Owner, owner identity.Owner, cowName string) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}
	if err := l.guardSigner(signer, owner); nil != err {
		return err
	}

	if !l.isCowOwnedAndExists(cowName) {
		return fault.ErrCowNotOwned
	}

	now := l.now()
	if !l.isCowAliveAndExists(cowName, now) {
		return fault.ErrCowIsDead
	}

	record := l.mustGetCow(cowName)

	tier := cow.Classify(record.LastFedTime, now)
	if cow.Full == tier {
		return fault.ErrCowIsStillFull
	}

	record.FeedingStats = cow.Feed(record.FeedingStats, tier)
	record.LastFedTime = now
	l.saveCow(record)

	env := &messagebus.Envelope{
		Tag: messagebus.TagFeedCow,
		To:  l.rootChainID,
		Payload: messagebus.PackPayload(messagebus.FeedCowPayload{
			Owner: owner,
			Cow:   *record,
		}),
	}
	l.messenger.Send(env)

	l.log.Infof("feed sent: %q tier: %d", cowName, tier)
	return nil
}

// SellCow - start a sell transaction
//
// nothing is changed locally before the send: the root ledger is the
// sole payer so only it performs the balance check
func (l *Ledger) SellCow(signer identity.Owner, owner identity.Owner, cowName string, bornTime time.Time) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}
	if err := l.guardSigner(signer, owner); nil != err {
		return err
	}

	if !l.isCowOwnedAndExists(cowName) {
		return fault.ErrCowNotOwned
	}

	now := l.now()
	if !l.isCowAliveAndExists(cowName, now) {
		return fault.ErrCowIsDead
	}
	if cow.IsUnderage(bornTime, now) {
		return fault.ErrCowIsUnderage
	}

	env := &messagebus.Envelope{
		Tag:     messagebus.TagSellCow,
		To:      l.rootChainID,
		Tracked: true,
		Payload: messagebus.PackPayload(messagebus.SellCowPayload{
			Owner:   owner,
			CowName: cowName,
		}),
	}
	l.messenger.Send(env)
	l.addPending(env.ID, cowName, 0)

	l.log.Infof("sell sent: %q", cowName)
	return nil
}

// BuryDeadCows - physically remove this account's dead cows
//
// death is otherwise only a derived predicate; burying reclaims the
// space and the ownership entries
func (l *Ledger) BuryDeadCows(signer identity.Owner) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}

	now := l.now()
	for _, record := range l.myCows() {
		if !cow.IsAlive(record.LastFedTime, now) {
			l.store.Cows.Delete([]byte(record.Name))
			l.store.Owned.Delete([]byte(record.Name))
			l.log.Infof("buried: %q", record.Name)
		}
	}
	return nil
}

// DeleteBuyNotification - pop the front buy notification
//
// a no-op on an empty queue, never an error
func (l *Ledger) DeleteBuyNotification(signer identity.Owner) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}
	l.store.BuyNotifications.PopFront()
	return nil
}

// DeleteSellNotification - pop the front sell notification
//
// a no-op on an empty queue, never an error
func (l *Ledger) DeleteSellNotification(signer identity.Owner) error {
	l.Lock()
	defer l.Unlock()

	if err := l.guardRootPlay(); nil != err {
		return err
	}
	l.store.SellNotifications.PopFront()
	return nil
}

// push a buy outcome onto the notification queue
func (l *Ledger) pushBuyNotification(cowName string, success bool) {
	buffer, err := json.Marshal(cowrecord.BuyNotification{
		CowName: cowName,
		Success: success,
	})
	logger.PanicIfError("ledger: pack buy notification", err)
	l.store.BuyNotifications.PushBack(buffer)
}

// push a sell outcome onto the notification queue
func (l *Ledger) pushSellNotification(cowName string, success bool, reason string) {
	buffer, err := json.Marshal(cowrecord.SellNotification{
		CowName:       cowName,
		Success:       success,
		FailureReason: reason,
	})
	logger.PanicIfError("ledger: pack sell notification", err)
	l.store.SellNotifications.PushBack(buffer)
}
