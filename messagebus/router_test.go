// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/microcow/microcowd/identity"
	"github.com/microcow/microcowd/messagebus"
)

// a handler recording everything it receives
type recordingHandler struct {
	received []*messagebus.Envelope
	fail     error
}

func (h *recordingHandler) HandleEnvelope(env *messagebus.Envelope) error {
	copied := *env
	h.received = append(h.received, &copied)
	return h.fail
}

var (
	chainOne   = identity.ChainID{0: 1}
	chainTwo   = identity.ChainID{0: 2}
	chainThree = identity.ChainID{0: 3}
)

func TestRouterDirectedDelivery(t *testing.T) {
	router := messagebus.NewRouter(nil)

	one := &recordingHandler{}
	two := &recordingHandler{}
	messengerOne := router.Connect(chainOne, one)
	router.Connect(chainTwo, two)

	messengerOne.Send(&messagebus.Envelope{
		Tag:     messagebus.TagFeedCow,
		To:      chainTwo,
		Payload: messagebus.PackPayload(messagebus.FeedCowPayload{}),
	})
	router.Drain()

	assert.Equal(t, 0, len(one.received), "origin received its own send")
	if assert.Equal(t, 1, len(two.received), "directed delivery") {
		env := two.received[0]
		assert.Equal(t, messagebus.TagFeedCow, env.Tag, "tag")
		assert.Equal(t, chainOne, env.From, "from stamped by the router")
		assert.NotZero(t, env.ID, "envelope id assigned")
		assert.False(t, env.Bounced, "not a bounce")
	}
}

func TestRouterBounceOnHandlerError(t *testing.T) {
	router := messagebus.NewRouter(nil)

	origin := &recordingHandler{}
	failing := &recordingHandler{fail: assert.AnError}
	messengerOne := router.Connect(chainOne, origin)
	router.Connect(chainTwo, failing)

	messengerOne.Send(&messagebus.Envelope{
		Tag:     messagebus.TagBuyCow,
		To:      chainTwo,
		Tracked: true,
		Payload: messagebus.PackPayload(messagebus.BuyCowPayload{}),
	})
	router.Drain()

	if assert.Equal(t, 1, len(origin.received), "bounce returned to origin") {
		bounce := origin.received[0]
		assert.True(t, bounce.Bounced, "bounced flag")
		assert.Equal(t, messagebus.TagBuyCow, bounce.Tag, "bounce keeps the tag")
		assert.Equal(t, chainOne, bounce.To, "bounce directed to origin")
	}
}

func TestRouterUntrackedFailureIsDropped(t *testing.T) {
	router := messagebus.NewRouter(nil)

	origin := &recordingHandler{}
	failing := &recordingHandler{fail: assert.AnError}
	messengerOne := router.Connect(chainOne, origin)
	router.Connect(chainTwo, failing)

	messengerOne.Send(&messagebus.Envelope{
		Tag:     messagebus.TagFeedCow,
		To:      chainTwo,
		Payload: messagebus.PackPayload(messagebus.FeedCowPayload{}),
	})
	router.Drain()

	assert.Equal(t, 0, len(origin.received), "untracked failure must not bounce")
}

func TestRouterUndeliverable(t *testing.T) {
	router := messagebus.NewRouter(nil)

	origin := &recordingHandler{}
	messengerOne := router.Connect(chainOne, origin)

	messengerOne.Send(&messagebus.Envelope{
		Tag:     messagebus.TagSellCow,
		To:      chainThree, // never connected
		Tracked: true,
		Payload: messagebus.PackPayload(messagebus.SellCowPayload{}),
	})
	router.Drain()

	if assert.Equal(t, 1, len(origin.received), "undeliverable tracked envelope bounces") {
		assert.True(t, origin.received[0].Bounced, "bounced flag")
	}
}

func TestRouterFanOut(t *testing.T) {
	router := messagebus.NewRouter(nil)

	root := &recordingHandler{}
	one := &recordingHandler{}
	two := &recordingHandler{}
	outside := &recordingHandler{}

	rootMessenger := router.Connect(chainThree, root)
	router.Connect(chainOne, one)
	router.Connect(chainTwo, two)
	router.Connect(identity.ChainID{0: 4}, outside)

	rootMessenger.Subscribe(chainOne, "herd")
	rootMessenger.Subscribe(chainTwo, "herd")
	rootMessenger.Subscribe(chainTwo, "herd") // idempotent

	rootMessenger.Publish(&messagebus.Envelope{
		Tag:     messagebus.TagBuySuccess,
		Channel: "herd",
		Payload: messagebus.PackPayload(messagebus.BuySuccessPayload{}),
	})
	router.Drain()

	assert.Equal(t, 1, len(one.received), "subscriber one")
	assert.Equal(t, 1, len(two.received), "subscriber two, duplicate subscription collapsed")
	assert.Equal(t, 0, len(outside.received), "non-subscriber")
	assert.Equal(t, 0, len(root.received), "publisher is not subscribed")

	if 1 == len(one.received) {
		assert.Equal(t, chainThree, one.received[0].From, "publisher stamped as origin")
	}
}

func TestRouterHandlerSendsAreQueued(t *testing.T) {
	router := messagebus.NewRouter(nil)

	// a handler replying to everything it receives
	var replyMessenger messagebus.Messenger
	replier := &replyingHandler{}
	origin := &recordingHandler{}

	messengerOne := router.Connect(chainOne, origin)
	replyMessenger = router.Connect(chainTwo, replier)
	replier.messenger = replyMessenger

	messengerOne.Send(&messagebus.Envelope{
		Tag:     messagebus.TagSellCow,
		To:      chainTwo,
		Tracked: true,
		Payload: messagebus.PackPayload(messagebus.SellCowPayload{CowName: "daisy"}),
	})
	router.Drain()

	if assert.Equal(t, 1, len(origin.received), "reply delivered in the same drain") {
		reply := origin.received[0]
		assert.Equal(t, messagebus.TagSellFailure, reply.Tag, "reply tag")
		assert.False(t, reply.Bounced, "a reply is not a bounce")
	}
}

// a handler sending a refusal back for every envelope
type replyingHandler struct {
	messenger messagebus.Messenger
}

func (h *replyingHandler) HandleEnvelope(env *messagebus.Envelope) error {
	h.messenger.Send(&messagebus.Envelope{
		Tag: messagebus.TagSellFailure,
		To:  env.From,
		Ref: env.ID,
		Payload: messagebus.PackPayload(messagebus.SellFailurePayload{
			Reason: "refused",
		}),
	})
	return nil
}

func TestTag(t *testing.T) {
	assert.True(t, messagebus.TagBuyCow.IsValid(), "valid tag")
	assert.False(t, messagebus.NoTag.IsValid(), "NoTag")
	assert.True(t, messagebus.TagSubscribe.IsRootDirected(), "root directed")
	assert.False(t, messagebus.TagBuySuccess.IsRootDirected(), "user directed")
	assert.Equal(t, "BuyCow", messagebus.TagBuyCow.String(), "tag name")
}
