// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/microcow/microcowd/counter"
	"github.com/microcow/microcowd/ledger"
)

// ServerArgument - the parameter block passed to every connection
// callback
type ServerArgument struct {
	Log       *logger.L
	Ledger    *ledger.Ledger
	StartTime time.Time
	Count     *counter.Counter
}

// Callback - serve JSON-RPC on one incoming connection
func Callback(conn io.ReadWriteCloser, argument interface{}) {

	serverArgument := argument.(*ServerArgument)
	if nil == serverArgument {
		panic("rpc: nil serverArgument")
	}
	if nil == serverArgument.Log {
		panic("rpc: nil serverArgument.Log")
	}

	serverArgument.Count.Increment()
	defer serverArgument.Count.Decrement()

	server := createServer(serverArgument)

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	server.ServeCodec(codec)
}

func createServer(argument *ServerArgument) *rpc.Server {

	microCow := &MicroCow{
		log:    argument.Log,
		ledger: argument.Ledger,
	}
	cow := &Cow{
		log:    argument.Log,
		ledger: argument.Ledger,
	}
	node := &Node{
		log:       argument.Log,
		ledger:    argument.Ledger,
		startTime: argument.StartTime,
		count:     argument.Count,
	}

	server := rpc.NewServer()
	server.Register(microCow)
	server.Register(cow)
	server.Register(node)

	return server
}
