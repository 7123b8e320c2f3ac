// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/identity"
	"github.com/microcow/microcowd/messagebus"
	"github.com/microcow/microcowd/storage"
)

// test directory for databases and logs
const testingDirName = "testing"

var (
	rootChain  = identity.ChainID{0: 'R'}
	aliceChain = identity.ChainID{0: 'A'}
	bobChain   = identity.ChainID{0: 'B'}

	rootOwner  = identity.Owner{0: 'r'}
	aliceOwner = identity.Owner{0: 'a'}
	bobOwner   = identity.Owner{0: 'b'}
)

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	removeFiles()
	os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger setup failed: %s", err))
	}

	result := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(result)
}

// testWorld - a root ledger and two user ledgers joined by an
// in-process router with a controllable clock
type testWorld struct {
	router *messagebus.Router
	root   *Ledger
	alice  *Ledger
	bob    *Ledger

	stores []*storage.Store
	clock  time.Time
}

// the start instant of every test world
var genesis = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

func (w *testWorld) now() time.Time {
	return w.clock
}

// advance the shared clock
func (w *testWorld) advance(d time.Duration) {
	w.clock = w.clock.Add(d)
}

// create one ledger wired into the router
func (w *testWorld) addLedger(t *testing.T, name string, chain identity.ChainID) *Ledger {
	store, err := storage.New(fmt.Sprintf("%s/%s.leveldb", testingDirName, name))
	if nil != err {
		t.Fatalf("storage setup error: %s", err)
	}
	w.stores = append(w.stores, store)

	l := New(logger.New(name), store, chain, rootChain)
	l.nowFunc = w.now
	l.Attach(w.router.Connect(chain, l))
	return l
}

// set up a fresh world, the user ledgers initialised and subscribed
func setup(t *testing.T, rootFloat uint64) *testWorld {
	removeTestDatabases()

	w := &testWorld{
		router: messagebus.NewRouter(logger.New("router")),
		clock:  genesis,
	}
	w.root = w.addLedger(t, "root", rootChain)
	w.alice = w.addLedger(t, "alice", aliceChain)
	w.bob = w.addLedger(t, "bob", bobChain)

	if err := w.root.InitialiseRoot(rootOwner, rootFloat); nil != err {
		t.Fatalf("root initialise error: %s", err)
	}
	if err := w.alice.Initialise(aliceOwner); nil != err {
		t.Fatalf("alice initialise error: %s", err)
	}
	if err := w.bob.Initialise(bobOwner); nil != err {
		t.Fatalf("bob initialise error: %s", err)
	}
	w.router.Drain() // deliver the subscriptions

	return w
}

func teardown(t *testing.T, w *testWorld) {
	for _, store := range w.stores {
		store.Close()
	}
	removeTestDatabases()
}

func removeTestDatabases() {
	for _, name := range []string{"root", "alice", "bob"} {
		os.RemoveAll(fmt.Sprintf("%s/%s.leveldb", testingDirName, name))
	}
}
