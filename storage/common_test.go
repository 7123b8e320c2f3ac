// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/microcow/microcowd/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// a key that must not exist
var nonExistantKey = []byte("/nonexistant")

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
}

// configure for testing
func setup(t *testing.T) *storage.Store {
	removeFiles()
	store, err := storage.New(databaseFileName)
	if nil != err {
		t.Fatalf("storage setup error: %s", err)
	}
	return store
}

// post test cleanup
func teardown(t *testing.T, store *storage.Store) {
	store.Close()
	removeFiles()
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}
