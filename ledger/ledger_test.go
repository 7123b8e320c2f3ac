// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/microcow/microcowd/constants"
	"github.com/microcow/microcowd/cowrecord"
	"github.com/microcow/microcowd/fault"
)

const testFloat uint64 = 1000000

func TestInitialise(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	assert.True(t, w.alice.IsInitialised(), "alice initialised")
	assert.Equal(t, constants.InitialUserTokens, w.alice.Balance(), "starting balance")
	assert.Equal(t, aliceOwner, w.alice.AccountOwner(), "owner")
	assert.False(t, w.alice.IsRoot(), "user ledger is not root")

	assert.True(t, w.root.IsRoot(), "root ledger")
	assert.Equal(t, testFloat, w.root.Balance(), "root float")

	// a second initialisation must be refused
	err := w.alice.Initialise(aliceOwner)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "double initialise")

	err = w.root.InitialiseRoot(rootOwner, testFloat)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "double root initialise")

	// the root account is not a player
	err = w.root.Initialise(rootOwner)
	assert.Equal(t, fault.ErrRootCannotPlay, err, "root as player")

	err = w.root.BuyCow(rootOwner, rootOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Equal(t, fault.ErrRootCannotPlay, err, "root buying")

	// a user chain cannot hold the root account
	err = w.alice.InitialiseRoot(aliceOwner, testFloat)
	assert.Equal(t, fault.ErrWrongChain, err, "root account on user chain")
}

func TestBuyCow(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")

	// the debit is applied before the mint is confirmed
	assert.Equal(t, uint64(5000), w.alice.Balance(), "optimistic debit")
	assert.Equal(t, 1, w.alice.PendingCount(), "pending commitment")

	w.router.Drain()

	// the commitment is resolved by the broadcast
	assert.Equal(t, 0, w.alice.PendingCount(), "pending resolved")
	assert.Equal(t, testFloat+5000, w.root.Balance(), "root received the payment")

	// every subscriber replicated the record
	record := w.alice.Cow("daisy")
	if assert.NotNil(t, record, "buyer replica") {
		assert.Equal(t, aliceOwner, record.Owner, "owner")
		assert.Equal(t, cowrecord.Hereford, record.Breed, "breed")
		assert.Equal(t, genesis, record.BornTime, "born at mint time")
		assert.Equal(t, genesis, record.LastFedTime, "fed at mint time")
		assert.True(t, record.Gender.IsValid(), "gender drawn")
	}
	assert.NotNil(t, w.bob.Cow("daisy"), "observer replica")

	// only the buyer owns it
	assert.Equal(t, 1, len(w.alice.MyCows()), "alice herd")
	assert.Equal(t, 0, len(w.bob.MyCows()), "bob herd")

	// the buyer got a success notification
	front := w.alice.FrontBuyNotification()
	if assert.NotNil(t, front, "buy notification") {
		assert.Equal(t, "daisy", front.CowName, "notification name")
		assert.True(t, front.Success, "notification outcome")
	}
	assert.Equal(t, 0, len(w.bob.BuyNotifications()), "observer has no notification")

	// pop the notification
	err = w.alice.DeleteBuyNotification(aliceOwner)
	assert.Nil(t, err, "delete notification error")
	assert.Nil(t, w.alice.FrontBuyNotification(), "notification queue drained")
}

func TestBuyCowChecks(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, bobOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Equal(t, fault.ErrNotAuthenticated, err, "signer mismatch")

	err = w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.NoBreed)
	assert.Equal(t, fault.ErrInvalidBreed, err, "invalid breed")

	// Holstein costs more than the starting balance
	err = w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Holstein)
	assert.Equal(t, fault.ErrInsufficientBalance, err, "insufficient balance")
	assert.Equal(t, constants.InitialUserTokens, w.alice.Balance(), "balance untouched")
	assert.Equal(t, 0, w.alice.PendingCount(), "nothing sent")
}

// two chains race for one name, the root's arrival order decides
func TestBuyCowConflict(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-a", cowrecord.Hereford)
	assert.Nil(t, err, "alice buy error")

	// bob has no replica yet so the local availability check passes
	err = w.bob.BuyCow(bobOwner, bobOwner, "daisy", "id-b", cowrecord.Hereford)
	assert.Nil(t, err, "bob buy error")
	assert.Equal(t, uint64(5000), w.bob.Balance(), "bob optimistic debit")

	w.router.Drain()

	// alice won, bob was refunded by the explicit refusal
	assert.Equal(t, constants.InitialUserTokens, w.bob.Balance(), "bob refunded")
	assert.Equal(t, 0, w.bob.PendingCount(), "bob pending compensated")
	assert.Equal(t, 1, len(w.alice.MyCows()), "alice owns the cow")
	assert.Equal(t, 0, len(w.bob.MyCows()), "bob owns nothing")

	front := w.bob.FrontBuyNotification()
	if assert.NotNil(t, front, "bob notification") {
		assert.False(t, front.Success, "bob notified of the refusal")
	}

	// bob's replica reflects the winner
	record := w.bob.Cow("daisy")
	if assert.NotNil(t, record, "bob replica") {
		assert.Equal(t, aliceOwner, record.Owner, "authoritative owner")
	}

	// with a live replica the next attempt fails locally
	err = w.bob.BuyCow(bobOwner, bobOwner, "daisy", "id-c", cowrecord.Hereford)
	assert.Equal(t, fault.ErrCowIsNotAvailable, err, "local availability check")

	// the root only received one payment
	assert.Equal(t, testFloat+5000, w.root.Balance(), "root balance")
}

// an unreachable root bounces the tracked buy back for compensation
func TestBuyCowBounce(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	w.router.Disconnect(rootChain)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	assert.Equal(t, uint64(5000), w.alice.Balance(), "optimistic debit")

	w.router.Drain()

	assert.Equal(t, constants.InitialUserTokens, w.alice.Balance(), "debit compensated")
	assert.Equal(t, 0, w.alice.PendingCount(), "pending compensated")
	assert.Nil(t, w.alice.Cow("daisy"), "no cow minted")

	front := w.alice.FrontBuyNotification()
	if assert.NotNil(t, front, "notification") {
		assert.False(t, front.Success, "failure reported")
	}
}

func TestFeedCow(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// not the owner
	err = w.bob.FeedCow(bobOwner, bobOwner, "daisy")
	assert.Equal(t, fault.ErrCowNotOwned, err, "feeding another chain's cow")

	// a cow fed within the well-fed window refuses the meal
	w.advance(1 * time.Hour)
	err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
	assert.Equal(t, fault.ErrCowIsStillFull, err, "still full")
	assert.True(t, w.alice.IsCowStillFull("daisy"), "still full query")

	// 7h after the last meal: on time
	w.advance(6 * time.Hour)
	err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
	assert.Nil(t, err, "on-time feed error")

	w.router.Drain()

	record := w.alice.Cow("daisy")
	if assert.NotNil(t, record, "record") {
		assert.Equal(t, uint64(1), record.FeedingStats.OnTime, "on-time counter")
		assert.Equal(t, genesis.Add(7*time.Hour), record.LastFedTime, "last fed time")
	}

	// the accepted feed was replicated through the broadcast
	replica := w.bob.Cow("daisy")
	if assert.NotNil(t, replica, "replica") {
		assert.Equal(t, uint64(1), replica.FeedingStats.OnTime, "replicated counter")
	}

	// 13h after the last meal: late
	w.advance(13 * time.Hour)
	err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
	assert.Nil(t, err, "late feed error")

	// 19h after the last meal: forgotten but still alive
	w.advance(19 * time.Hour)
	err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
	assert.Nil(t, err, "forgot feed error")

	record = w.alice.Cow("daisy")
	if assert.NotNil(t, record, "record") {
		expected := cowrecord.FeedingStats{OnTime: 1, Late: 1, Forgot: 1}
		assert.Equal(t, expected, record.FeedingStats, "feeding stats")
	}

	// 25h after the last meal the cow has died
	w.advance(25 * time.Hour)
	err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
	assert.Equal(t, fault.ErrCowIsDead, err, "feeding a dead cow")
	assert.False(t, w.alice.IsCowAlive("daisy"), "alive query")
}

func TestSellCow(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// five on-time feeds while the cow matures
	for i := 0; i < 5; i += 1 {
		w.advance(12 * time.Hour)
		err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
		assert.Nil(t, err, "feed error")
	}
	w.router.Drain()

	// 73h old: mature and fed 13h ago
	w.advance(13 * time.Hour)
	assert.False(t, w.alice.IsCowUnderage("daisy"), "mature")

	// base 5000 plus five on-time rewards of 0.50% each
	assert.Equal(t, uint64(5125), w.alice.SellValue("daisy"), "sell value")

	record := w.alice.Cow("daisy")
	err = w.alice.SellCow(aliceOwner, aliceOwner, "daisy", record.BornTime)
	assert.Nil(t, err, "sell error")
	assert.Equal(t, 1, w.alice.PendingCount(), "pending commitment")

	w.router.Drain()

	assert.Equal(t, 0, w.alice.PendingCount(), "pending resolved")
	assert.Equal(t, uint64(10125), w.alice.Balance(), "payment received")
	assert.Equal(t, testFloat+5000-5125, w.root.Balance(), "root paid")

	// the cow is gone everywhere
	assert.Nil(t, w.alice.Cow("daisy"), "seller replica removed")
	assert.Nil(t, w.bob.Cow("daisy"), "observer replica removed")
	assert.Equal(t, 0, len(w.alice.MyCows()), "herd empty")

	front := w.alice.FrontSellNotification()
	if assert.NotNil(t, front, "sell notification") {
		assert.True(t, front.Success, "outcome")
		assert.Equal(t, "", front.FailureReason, "no failure reason")
	}

	// tokens were only moved, never created or destroyed
	total := w.alice.Balance() + w.bob.Balance() + w.root.Balance()
	assert.Equal(t, testFloat+2*constants.InitialUserTokens, total, "token conservation")
}

func TestSellCowChecks(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// keep it alive but still underage
	w.advance(24 * time.Hour)
	err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
	assert.Nil(t, err, "feed error")
	w.router.Drain()

	w.advance(12 * time.Hour)
	record := w.alice.Cow("daisy")
	err = w.alice.SellCow(aliceOwner, aliceOwner, "daisy", record.BornTime)
	assert.Equal(t, fault.ErrCowIsUnderage, err, "underage sale")

	// not the owner
	err = w.bob.SellCow(bobOwner, bobOwner, "daisy", record.BornTime)
	assert.Equal(t, fault.ErrCowNotOwned, err, "selling another chain's cow")

	// a dead cow cannot be sold
	w.advance(4 * 24 * time.Hour)
	err = w.alice.SellCow(aliceOwner, aliceOwner, "daisy", record.BornTime)
	assert.Equal(t, fault.ErrCowIsDead, err, "selling a dead cow")
}

// the root refuses a sale it cannot pay for
func TestSellCowInsufficientRootBalance(t *testing.T) {
	w := setup(t, 0)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// the root holds exactly the 5000 it was paid, the appraisal
	// with five on-time rewards is 5125
	for i := 0; i < 5; i += 1 {
		w.advance(12 * time.Hour)
		err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
		assert.Nil(t, err, "feed error")
	}
	w.router.Drain()
	w.advance(13 * time.Hour)

	record := w.alice.Cow("daisy")
	err = w.alice.SellCow(aliceOwner, aliceOwner, "daisy", record.BornTime)
	assert.Nil(t, err, "sell error")

	w.router.Drain()

	// the sale was refused, nothing changed hands
	assert.Equal(t, uint64(5000), w.alice.Balance(), "seller balance unchanged")
	assert.Equal(t, uint64(5000), w.root.Balance(), "root balance unchanged")
	assert.NotNil(t, w.alice.Cow("daisy"), "cow kept")
	assert.Equal(t, 1, len(w.alice.MyCows()), "ownership kept")
	assert.Equal(t, 0, w.alice.PendingCount(), "pending compensated")

	front := w.alice.FrontSellNotification()
	if assert.NotNil(t, front, "sell notification") {
		assert.False(t, front.Success, "outcome")
		assert.Equal(t, "Insufficient contract balance", front.FailureReason, "reason")
	}
}

// an unreachable root bounces the tracked sell back
func TestSellCowBounce(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	for i := 0; i < 6; i += 1 {
		w.advance(12 * time.Hour)
		err = w.alice.FeedCow(aliceOwner, aliceOwner, "daisy")
		assert.Nil(t, err, "feed error")
	}
	w.router.Drain()

	w.router.Disconnect(rootChain)

	record := w.alice.Cow("daisy")
	err = w.alice.SellCow(aliceOwner, aliceOwner, "daisy", record.BornTime)
	assert.Nil(t, err, "sell error")

	w.router.Drain()

	// no local state was changed by the attempt
	assert.Equal(t, uint64(5000), w.alice.Balance(), "balance unchanged")
	assert.NotNil(t, w.alice.Cow("daisy"), "cow kept")
	assert.Equal(t, 0, w.alice.PendingCount(), "pending compensated")

	front := w.alice.FrontSellNotification()
	if assert.NotNil(t, front, "sell notification") {
		assert.False(t, front.Success, "outcome")
		assert.Equal(t, "Failure to sell, operation bounced", front.FailureReason, "reason")
	}
}

// a dead cow's name frees up, but never for its negligent owner
func TestReviveBan(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// the cow starves
	w.advance(25 * time.Hour)
	assert.False(t, w.alice.IsCowAlive("daisy"), "dead")

	// the negligent owner cannot reuse the name
	err = w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-2", cowrecord.Hereford)
	assert.Equal(t, fault.ErrCannotReviveCow, err, "revival refused")

	// another chain may claim the name
	err = w.bob.BuyCow(bobOwner, bobOwner, "daisy", "id-3", cowrecord.Hereford)
	assert.Nil(t, err, "bob buy error")
	w.router.Drain()

	assert.Equal(t, 1, len(w.bob.MyCows()), "bob owns the new cow")

	record := w.alice.Cow("daisy")
	if assert.NotNil(t, record, "alice replica") {
		assert.Equal(t, bobOwner, record.Owner, "new owner")
	}

	// the replica refresh dropped alice's stale ownership claim,
	// so her herd is empty without an explicit burial
	assert.Equal(t, 0, len(w.alice.MyCows()), "stale claim dropped")

	// a fresh name is always open to her
	err = w.alice.BuyCow(aliceOwner, aliceOwner, "rosie", "id-4", cowrecord.Jersey)
	assert.Nil(t, err, "buy after burial error")
	w.router.Drain()
	assert.Equal(t, 1, len(w.alice.MyCows()), "new herd")
}

func TestBuryDeadCows(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.alice.BuyCow(aliceOwner, aliceOwner, "daisy", "id-1", cowrecord.Hereford)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// keep a second cow alive across the burial
	w.advance(20 * time.Hour)
	err = w.alice.BuyCow(aliceOwner, aliceOwner, "rosie", "id-2", cowrecord.Jersey)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// daisy dies, rosie lives
	w.advance(5 * time.Hour)
	assert.False(t, w.alice.IsCowAlive("daisy"), "daisy dead")
	assert.True(t, w.alice.IsCowAlive("rosie"), "rosie alive")

	err = w.alice.BuryDeadCows(aliceOwner)
	assert.Nil(t, err, "bury error")

	assert.Nil(t, w.alice.Cow("daisy"), "daisy removed")
	assert.NotNil(t, w.alice.Cow("rosie"), "rosie kept")
	assert.Equal(t, 1, len(w.alice.MyCows()), "herd size")
}

// a feed broadcast for a cow owned elsewhere must clear any stale
// local claim on that name, the same realignment a buy broadcast does
func TestFeedSuccessDropsStaleClaim(t *testing.T) {
	w := setup(t, testFloat)
	defer teardown(t, w)

	err := w.bob.BuyCow(bobOwner, bobOwner, "daisy", "id-1", cowrecord.Jersey)
	assert.Nil(t, err, "buy error")
	w.router.Drain()

	// plant a stale claim on alice for bob's cow
	w.alice.store.Owned.Put([]byte("daisy"), ownedMarker)
	assert.True(t, w.alice.store.Owned.Has([]byte("daisy")), "stale claim planted")

	w.advance(7 * time.Hour)
	err = w.bob.FeedCow(bobOwner, bobOwner, "daisy")
	assert.Nil(t, err, "feed error")
	w.router.Drain()

	// the broadcast replica realigned alice's ownership index
	assert.False(t, w.alice.store.Owned.Has([]byte("daisy")), "stale claim dropped")
	assert.Equal(t, 0, len(w.alice.MyCows()), "alice herd")

	record := w.alice.Cow("daisy")
	assert.NotNil(t, record, "replica present")
	assert.Equal(t, bobOwner, record.Owner, "replica owner")
	assert.Equal(t, w.now(), record.LastFedTime, "replica fed time")
	assert.Equal(t, uint64(1), record.FeedingStats.OnTime, "replica stats")
}
