// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/microcow/microcowd/rpc"
)

// GetNodeInfo - request status from microcowd (must be matching version)
func (client *Client) GetNodeInfo() (*rpc.InfoReply, error) {
	var reply rpc.InfoReply
	if err := client.client.Call("Node.Info", &rpc.InfoArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
