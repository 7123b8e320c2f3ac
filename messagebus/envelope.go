// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"encoding/json"

	"github.com/microcow/microcowd/identity"
)

// Envelope - one message packet in flight between ledgers
//
// To is the destination chain for directed messages and is ignored
// for channel publications; Ref links a reply or broadcast back to
// the tracked envelope that caused it, zero when unrelated
type Envelope struct {
	ID      uint64           `json:"id"`
	Tag     Tag              `json:"tag"`
	From    identity.ChainID `json:"from"`
	To      identity.ChainID `json:"to"`
	Channel string           `json:"channel,omitempty"`
	Tracked bool             `json:"tracked"`
	Bounced bool             `json:"bounced"`
	Ref     uint64           `json:"ref,omitempty"`
	Payload json.RawMessage  `json:"payload"`
}

// Handler - inbound side of a ledger
//
// one envelope is processed to completion, including any resulting
// sends, before the next is admitted
type Handler interface {
	HandleEnvelope(env *Envelope) error
}

// Messenger - outbound side of a ledger
//
// Send queues a directed message, Publish queues a broadcast channel
// event (root ledger only) and Subscribe is the transport primitive
// binding a chain to the broadcast channel
type Messenger interface {
	Send(env *Envelope)
	Publish(env *Envelope)
	Subscribe(chain identity.ChainID, channel string)
}

// Pack - encode an envelope for the wire
func (env *Envelope) Pack() ([]byte, error) {
	return json.Marshal(env)
}

// UnpackEnvelope - decode an envelope from the wire
func UnpackEnvelope(buffer []byte) (*Envelope, error) {
	env := &Envelope{}
	if err := json.Unmarshal(buffer, env); nil != err {
		return nil, err
	}
	return env, nil
}

// DecodePayload - unmarshal the payload into its typed form
func (env *Envelope) DecodePayload(payload interface{}) error {
	return json.Unmarshal(env.Payload, payload)
}
