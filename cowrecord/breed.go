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

// Breed - breed enumeration
type Breed uint64

// possible breed values
const (
	NoBreed      Breed = iota // this must be the first value
	Jersey       Breed = iota
	Limousin     Breed = iota
	Hallikar     Breed = iota
	Hereford     Breed = iota
	Holstein     Breed = iota
	Simmental    Breed = iota
	maximumBreed Breed = iota // this must be the last value
	FirstBreed   Breed = NoBreed + 1
	LastBreed    Breed = maximumBreed - 1
	BreedCount   int   = int(LastBreed) // count of breeds
)

// fixed unit prices by breed
const (
	jerseyPrice    uint64 = 1000
	limousinPrice  uint64 = 1000
	hallikarPrice  uint64 = 1000
	herefordPrice  uint64 = 5000
	holsteinPrice  uint64 = 15000
	simmentalPrice uint64 = 15000
)

// internal conversion
func breedToString(breed Breed) ([]byte, error) {
	switch breed {
	case NoBreed:
		return []byte{}, nil
	case Jersey:
		return []byte("Jersey"), nil
	case Limousin:
		return []byte("Limousin"), nil
	case Hallikar:
		return []byte("Hallikar"), nil
	case Hereford:
		return []byte("Hereford"), nil
	case Holstein:
		return []byte("Holstein"), nil
	case Simmental:
		return []byte("Simmental"), nil
	default:
		return []byte{}, fault.ErrInvalidBreed
	}
}

// BreedFromString - convert a string to a breed
func BreedFromString(in string) (Breed, error) {
	switch strings.ToLower(in) {
	case "":
		return NoBreed, nil
	case "jersey":
		return Jersey, nil
	case "limousin":
		return Limousin, nil
	case "hallikar":
		return Hallikar, nil
	case "hereford":
		return Hereford, nil
	case "holstein":
		return Holstein, nil
	case "simmental":
		return Simmental, nil
	default:
		return NoBreed, fault.ErrInvalidBreed
	}
}

// String - convert a breed to its name
func (breed Breed) String() string {
	s, err := breedToString(breed)
	if nil != err {
		logger.Panicf("invalid breed enumeration: %d", breed)
	}
	return string(s)
}

// GoString - convert both enum value and name, for debugging
func (breed Breed) GoString() string {
	return fmt.Sprintf("<Breed#%d:%q>", breed, breed.String())
}

// IsValid - valid breed if in range of FirstBreed to LastBreed
// NoBreed is not considered as valid
func (breed Breed) IsValid() bool {
	return breed >= FirstBreed && breed <= LastBreed
}

// Price - the fixed unit price of a breed
func (breed Breed) Price() uint64 {
	switch breed {
	case Jersey:
		return jerseyPrice
	case Limousin:
		return limousinPrice
	case Hallikar:
		return hallikarPrice
	case Hereford:
		return herefordPrice
	case Holstein:
		return holsteinPrice
	case Simmental:
		return simmentalPrice
	default:
		logger.Panicf("no price for breed enumeration: %d", breed)
		return 0
	}
}

// MarshalText - convert a breed to text
func (breed Breed) MarshalText() ([]byte, error) {
	s, err := breedToString(breed)
	if nil != err {
		return nil, err
	}
	return s, nil
}

// UnmarshalText - convert text to a breed
func (breed *Breed) UnmarshalText(s []byte) error {
	b, err := BreedFromString(string(s))
	if nil != err {
		return err
	}
	*breed = b
	return nil
}
