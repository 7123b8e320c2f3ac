// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cow

import (
	"encoding/binary"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/microcow/microcowd/cowrecord"
)

// GenderSource - deterministic gender draws for minting
//
// the seed mixes the wall-clock timestamp with a local monotonic
// counter so two draws within the same microsecond still differ
type GenderSource struct {
	sync.Mutex
	counter uint64
}

// NewGenderSource - create a draw source starting at counter zero
func NewGenderSource() *GenderSource {
	return &GenderSource{}
}

// Draw - one gender draw at the given time
//
// an even first digest byte selects Female, an odd one Male
func (source *GenderSource) Draw(now time.Time) cowrecord.Gender {
	source.Lock()
	source.counter += 1
	counter := source.counter
	source.Unlock()

	// the seed text is the microsecond timestamp repeated three
	// times and truncated to 32 bytes
	timestamp := strconv.FormatInt(now.UnixNano()/1000, 10)
	repeated := timestamp + timestamp + timestamp
	seed := make([]byte, 32, 40)
	copy(seed, repeated)

	seed = append(seed, 0, 0, 0, 0, 0, 0, 0, 0)
	binary.BigEndian.PutUint64(seed[32:], counter)

	digest := sha3.Sum256(seed)
	if 0 == digest[0]%2 {
		return cowrecord.Female
	}
	return cowrecord.Male
}
