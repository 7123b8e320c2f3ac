// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/microcow/microcowd/rpc"
)

// GetCow - one cow and its derived lifecycle state
func (client *Client) GetCow(name string) (*rpc.CowReply, error) {
	var reply rpc.CowReply
	arguments := rpc.CowArguments{
		Name: name,
	}
	if err := client.client.Call("Cow.Get", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// ListCows - every cow this account owns
func (client *Client) ListCows() (*rpc.ListReply, error) {
	var reply rpc.ListReply
	if err := client.client.Call("Cow.List", &rpc.ListArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// CountCows - size of the local replica
func (client *Client) CountCows() (*rpc.CountReply, error) {
	var reply rpc.CountReply
	if err := client.client.Call("Cow.Count", &rpc.ListArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// GetNotifications - all undelivered buy and sell outcomes
func (client *Client) GetNotifications() (*rpc.NotificationsReply, error) {
	var reply rpc.NotificationsReply
	if err := client.client.Call("Cow.Notifications", &rpc.ListArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
