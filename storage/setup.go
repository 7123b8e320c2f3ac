// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/microcow/microcowd/fault"
)

// Store - the set of pools over one ledger database
//
// note all pool fields must be exported or initialisation will panic
type Store struct {
	sync.RWMutex

	Account           *PoolHandle  `prefix:"A"`
	Cows              *PoolHandle  `prefix:"C"`
	Owned             *PoolHandle  `prefix:"O"`
	BuyNotifications  *QueueHandle `prefix:"B"`
	SellNotifications *QueueHandle `prefix:"S"`
	Pending           *PoolHandle  `prefix:"P"`
	TestData          *PoolHandle  `prefix:"Z"`

	database *leveldb.DB
}

// New - open the database and set up all pools
func New(database string) (*Store, error) {

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return nil, err
	}

	store := &Store{
		database: db,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(store).Elem()

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(store).Elem()

	// scan each field to set up its pool
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			continue // not a pool field
		}
		prefix := prefixTag[0]
		limit := []byte{prefix + 1}

		pool := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			database: db,
		}

		switch fieldInfo.Type {
		case reflect.TypeOf((*PoolHandle)(nil)):
			poolValue.Field(i).Set(reflect.ValueOf(pool))
		case reflect.TypeOf((*QueueHandle)(nil)):
			poolValue.Field(i).Set(reflect.ValueOf(&QueueHandle{pool: pool}))
		default:
			db.Close()
			return nil, fault.ErrInvalidStructPointer
		}
	}

	return store, nil
}

// Close - finish with the database
func (store *Store) Close() error {
	store.Lock()
	defer store.Unlock()
	if nil == store.database {
		return fault.ErrNotInitialised
	}
	err := store.database.Close()
	store.database = nil
	return err
}
