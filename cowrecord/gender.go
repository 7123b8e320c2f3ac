// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cowrecord

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/fault"
)

// Gender - gender enumeration
type Gender uint64

// possible gender values
const (
	NoGender      Gender = iota // this must be the first value
	Female        Gender = iota
	Male          Gender = iota
	maximumGender Gender = iota // this must be the last value
	FirstGender   Gender = NoGender + 1
	LastGender    Gender = maximumGender - 1
)

// internal conversion
func genderToString(gender Gender) ([]byte, error) {
	switch gender {
	case NoGender:
		return []byte{}, nil
	case Female:
		return []byte("Female"), nil
	case Male:
		return []byte("Male"), nil
	default:
		return []byte{}, fault.ErrInvalidGender
	}
}

// GenderFromString - convert a string to a gender
func GenderFromString(in string) (Gender, error) {
	switch strings.ToLower(in) {
	case "":
		return NoGender, nil
	case "female":
		return Female, nil
	case "male":
		return Male, nil
	default:
		return NoGender, fault.ErrInvalidGender
	}
}

// String - convert a gender to its name
func (gender Gender) String() string {
	s, err := genderToString(gender)
	if nil != err {
		logger.Panicf("invalid gender enumeration: %d", gender)
	}
	return string(s)
}

// GoString - convert both enum value and name, for debugging
func (gender Gender) GoString() string {
	return fmt.Sprintf("<Gender#%d:%q>", gender, gender.String())
}

// IsValid - valid gender if in range of FirstGender to LastGender
func (gender Gender) IsValid() bool {
	return gender >= FirstGender && gender <= LastGender
}

// MarshalText - convert a gender to text
func (gender Gender) MarshalText() ([]byte, error) {
	s, err := genderToString(gender)
	if nil != err {
		return nil, err
	}
	return s, nil
}

// UnmarshalText - convert text to a gender
func (gender *Gender) UnmarshalText(s []byte) error {
	g, err := GenderFromString(string(s))
	if nil != err {
		return err
	}
	*gender = g
	return nil
}
