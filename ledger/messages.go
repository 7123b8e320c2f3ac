// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/microcow/microcowd/constants"
	"github.com/microcow/microcowd/cow"
	"github.com/microcow/microcowd/cowrecord"
	"github.com/microcow/microcowd/fault"
	"github.com/microcow/microcowd/messagebus"
)

// the reason reported when a tracked sell message bounces
const sellBouncedReason = "Failure to sell, operation bounced"

// HandleEnvelope - process one inbound message packet
//
// a returned error aborts the whole step with no partial state; the
// transport turns an error on a tracked delivery into a bounce back
// to the origin chain
func (l *Ledger) HandleEnvelope(env *messagebus.Envelope) error {
	l.Lock()
	defer l.Unlock()

	if !env.Tag.IsValid() {
		return fault.ErrUnexpectedMessage
	}

	// a bounced envelope is executed by its origin chain
	if env.Bounced {
		return l.handleBounce(env)
	}

	switch env.Tag {
	case messagebus.TagBuyCow:
		return l.handleBuyCow(env)
	case messagebus.TagFeedCow:
		return l.handleFeedCow(env)
	case messagebus.TagSellCow:
		return l.handleSellCow(env)
	case messagebus.TagSubscribe:
		return l.handleSubscribe(env)
	case messagebus.TagBuySuccess:
		return l.handleBuySuccess(env)
	case messagebus.TagBuyFailure:
		return l.handleBuyFailure(env)
	case messagebus.TagSellSuccess:
		return l.handleSellSuccess(env)
	case messagebus.TagSellFailure:
		return l.handleSellFailure(env)
	case messagebus.TagFeedSuccess:
		return l.handleFeedSuccess(env)
	default:
		return fault.ErrUnexpectedMessage
	}
}

// compensation for tracked envelopes returned by the transport
//
// only Buy and Sell carry a balance-affecting commitment; a bounced
// Feed or Subscribe is a no-op
func (l *Ledger) handleBounce(env *messagebus.Envelope) error {
	switch env.Tag {

	case messagebus.TagBuyCow:
		payload := messagebus.BuyCowPayload{}
		if err := env.DecodePayload(&payload); nil != err {
			return err
		}
		// undo the optimistic debit, the mint never happened
		l.credit(payload.Params.Price)
		l.pushBuyNotification(payload.Params.Name, false)
		l.resolvePending(env.ID, PendingCompensated)
		l.log.Warnf("buy bounced: %q refunded: %d", payload.Params.Name, payload.Params.Price)
		return nil

	case messagebus.TagSellCow:
		payload := messagebus.SellCowPayload{}
		if err := env.DecodePayload(&payload); nil != err {
			return err
		}
		// nothing was changed locally, only report the failure
		l.pushSellNotification(payload.CowName, false, sellBouncedReason)
		l.resolvePending(env.ID, PendingCompensated)
		l.log.Warnf("sell bounced: %q", payload.CowName)
		return nil

	default:
		// feeding already happened locally and has no balance
		// effect, there is nothing to compensate; bounced
		// broadcasts are ignored
		return nil
	}
}

// a message executed only by the root ledger
func (l *Ledger) guardRootExecution() error {
	if !l.IsRoot() {
		return fault.ErrWrongChain
	}
	return nil
}

// root: mint a cow or refuse the buy
func (l *Ledger) handleBuyCow(env *messagebus.Envelope) error {
	if err := l.guardRootExecution(); nil != err {
		return err
	}

	payload := messagebus.BuyCowPayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}
	params := payload.Params

	now := l.now()

	// the root ledger is the single writer of cow records, a race
	// between two buyers collapses to arrival order here
	if l.isCowAliveAndExists(params.Name, now) {
		conflict := l.mustGetCow(params.Name)
		reply := &messagebus.Envelope{
			Tag: messagebus.TagBuyFailure,
			To:  env.From,
			Ref: env.ID,
			Payload: messagebus.PackPayload(messagebus.BuyFailurePayload{
				Cow:    *conflict,
				Params: params,
			}),
		}
		l.messenger.Send(reply)
		l.log.Infof("buy refused: %q already alive, owner: %s", params.Name, conflict.Owner)
		return nil
	}

	record := &cowrecord.CowData{
		Id:           params.Id,
		Name:         params.Name,
		Breed:        params.Breed,
		Gender:       params.Gender,
		BornTime:     now,
		LastFedTime:  now,
		FeedingStats: cowrecord.FeedingStats{},
		Owner:        payload.Owner,
	}
	l.saveCow(record)

	// the root receives the payment for the cow
	l.credit(params.Price)

	l.messenger.Publish(&messagebus.Envelope{
		Tag:     messagebus.TagBuySuccess,
		Channel: constants.BroadcastChannel,
		Ref:     env.ID,
		Payload: messagebus.PackPayload(messagebus.BuySuccessPayload{
			Cow: *record,
		}),
	})
	l.log.Infof("minted: %q for: %s", params.Name, payload.Owner)
	return nil
}

// root: persist a forwarded feed and broadcast it
func (l *Ledger) handleFeedCow(env *messagebus.Envelope) error {
	if err := l.guardRootExecution(); nil != err {
		return err
	}

	payload := messagebus.FeedCowPayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}

	record := payload.Cow
	l.saveCow(&record)

	l.messenger.Publish(&messagebus.Envelope{
		Tag:     messagebus.TagFeedSuccess,
		Channel: constants.BroadcastChannel,
		Ref:     env.ID,
		Payload: messagebus.PackPayload(messagebus.FeedSuccessPayload{
			Cow: record,
		}),
	})
	return nil
}

// root: appraise, pay and retire a cow, or refuse the sale
func (l *Ledger) handleSellCow(env *messagebus.Envelope) error {
	if err := l.guardRootExecution(); nil != err {
		return err
	}

	payload := messagebus.SellCowPayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}

	record := l.getCow(payload.CowName)
	if nil == record {
		// unknown to the authority: the tracked message bounces
		// and the seller is notified by its own compensation
		return fault.ErrCowNotFound
	}

	payment := cow.Appraisal(record)

	if l.account().Balance < payment {
		reply := &messagebus.Envelope{
			Tag: messagebus.TagSellFailure,
			To:  env.From,
			Ref: env.ID,
			Payload: messagebus.PackPayload(messagebus.SellFailurePayload{
				CowName: payload.CowName,
				Reason:  "Insufficient contract balance",
			}),
		}
		l.messenger.Send(reply)
		l.log.Warnf("sale refused: %q payment: %d exceeds root balance", payload.CowName, payment)
		return nil
	}

	l.store.Cows.Delete([]byte(payload.CowName))
	if err := l.debit(payment); nil != err {
		// balance was checked just above
		return err
	}

	l.messenger.Publish(&messagebus.Envelope{
		Tag:     messagebus.TagSellSuccess,
		Channel: constants.BroadcastChannel,
		Ref:     env.ID,
		Payload: messagebus.PackPayload(messagebus.SellSuccessPayload{
			CowName:  payload.CowName,
			CowOwner: record.Owner,
			Payment:  payment,
		}),
	})
	l.log.Infof("sold: %q payment: %d to: %s", payload.CowName, payment, record.Owner)
	return nil
}

// root: bind the sender's chain to the broadcast channel
func (l *Ledger) handleSubscribe(env *messagebus.Envelope) error {
	if err := l.guardRootExecution(); nil != err {
		return err
	}

	l.messenger.Subscribe(env.From, constants.BroadcastChannel)
	l.subscribers.Set(env.From.String(), struct{}{}, 0)
	l.log.Infof("subscribed: %s", env.From)
	return nil
}

// every subscriber: replicate the new cow; the buyer additionally
// gains the ownership entry and a success notification, and any
// stale claim on the name is dropped
func (l *Ledger) handleBuySuccess(env *messagebus.Envelope) error {
	payload := messagebus.BuySuccessPayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}

	record := payload.Cow
	l.replicateCow(&record)

	if l.account().Owner == record.Owner {
		l.pushBuyNotification(record.Name, true)
		l.resolvePending(env.Ref, PendingCommitted)
	}
	return nil
}

// origin only: compensate the debit and refresh the local cache with
// the conflicting record
func (l *Ledger) handleBuyFailure(env *messagebus.Envelope) error {
	payload := messagebus.BuyFailurePayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}

	l.credit(payload.Params.Price)
	l.pushBuyNotification(payload.Params.Name, false)
	l.resolvePending(env.Ref, PendingCompensated)

	record := payload.Cow
	l.replicateCow(&record)

	l.log.Infof("buy refused remotely: %q refunded: %d", payload.Params.Name, payload.Params.Price)
	return nil
}

// every subscriber: remove the sold cow; the seller additionally
// drops its ownership entry, receives the payment and a notification
func (l *Ledger) handleSellSuccess(env *messagebus.Envelope) error {
	payload := messagebus.SellSuccessPayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}

	key := []byte(payload.CowName)

	if l.account().Owner == payload.CowOwner {
		l.store.Owned.Delete(key)
		l.credit(payload.Payment)
		l.pushSellNotification(payload.CowName, true, "")
		l.resolvePending(env.Ref, PendingCommitted)
	}

	l.store.Cows.Delete(key)
	return nil
}

// origin only: report the refused sale
func (l *Ledger) handleSellFailure(env *messagebus.Envelope) error {
	payload := messagebus.SellFailurePayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}

	l.pushSellNotification(payload.CowName, false, payload.Reason)
	l.resolvePending(env.Ref, PendingCompensated)
	return nil
}

// every subscriber: refresh the replicated record; a claim
// superseded by another chain's ownership is dropped
func (l *Ledger) handleFeedSuccess(env *messagebus.Envelope) error {
	payload := messagebus.FeedSuccessPayload{}
	if err := env.DecodePayload(&payload); nil != err {
		return err
	}

	record := payload.Cow
	l.replicateCow(&record)
	return nil
}
