// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"fmt"

	"github.com/microcow/microcowd/fault"
)

// Tag - message tag enumeration
type Tag uint64

// possible message tags
const (
	NoTag Tag = iota // this must be the first value

	// executed by the root ledger
	TagBuyCow    Tag = iota
	TagFeedCow   Tag = iota
	TagSellCow   Tag = iota
	TagSubscribe Tag = iota

	// executed by user ledgers
	TagBuySuccess  Tag = iota
	TagBuyFailure  Tag = iota
	TagSellSuccess Tag = iota
	TagSellFailure Tag = iota
	TagFeedSuccess Tag = iota

	maximumTag Tag = iota // this must be the last value
)

// internal conversion
func tagToString(tag Tag) ([]byte, error) {
	switch tag {
	case TagBuyCow:
		return []byte("BuyCow"), nil
	case TagFeedCow:
		return []byte("FeedCow"), nil
	case TagSellCow:
		return []byte("SellCow"), nil
	case TagSubscribe:
		return []byte("Subscribe"), nil
	case TagBuySuccess:
		return []byte("BuySuccess"), nil
	case TagBuyFailure:
		return []byte("BuyFailure"), nil
	case TagSellSuccess:
		return []byte("SellSuccess"), nil
	case TagSellFailure:
		return []byte("SellFailure"), nil
	case TagFeedSuccess:
		return []byte("FeedSuccess"), nil
	default:
		return []byte{}, fault.ErrUnexpectedMessage
	}
}

// String - convert a tag to its name
func (tag Tag) String() string {
	s, err := tagToString(tag)
	if nil != err {
		return fmt.Sprintf("Tag#%d", uint64(tag))
	}
	return string(s)
}

// IsValid - check tag is in the enumerated range
func (tag Tag) IsValid() bool {
	return tag > NoTag && tag < maximumTag
}

// IsRootDirected - tags that only the root ledger executes
func (tag Tag) IsRootDirected() bool {
	switch tag {
	case TagBuyCow, TagFeedCow, TagSellCow, TagSubscribe:
		return true
	default:
		return false
	}
}
