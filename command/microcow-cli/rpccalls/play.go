// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/microcow/microcowd/rpc"
)

// Initialise - set up the account on the connected user ledger
func (client *Client) Initialise(signer string) (*rpc.InitialiseReply, error) {
	var reply rpc.InitialiseReply
	arguments := rpc.InitialiseArguments{
		Signer: signer,
	}
	if err := client.client.Call("MicroCow.Initialise", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Subscribe - re-request the broadcast subscription
func (client *Client) Subscribe(signer string) (*rpc.BoolReply, error) {
	var reply rpc.BoolReply
	arguments := rpc.SubscribeArguments{
		Signer: signer,
	}
	if err := client.client.Call("MicroCow.Subscribe", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Buy - purchase one new cow
func (client *Client) Buy(signer string, owner string, id string, name string, breed string) (*rpc.BuyReply, error) {
	var reply rpc.BuyReply
	arguments := rpc.BuyArguments{
		Signer: signer,
		Owner:  owner,
		Id:     id,
		Name:   name,
		Breed:  breed,
	}
	if err := client.client.Call("MicroCow.Buy", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Feed - record a meal for one owned cow
func (client *Client) Feed(signer string, owner string, name string) (*rpc.BoolReply, error) {
	var reply rpc.BoolReply
	arguments := rpc.FeedArguments{
		Signer: signer,
		Owner:  owner,
		Name:   name,
	}
	if err := client.client.Call("MicroCow.Feed", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Sell - sell one owned cow back to the root ledger
func (client *Client) Sell(signer string, owner string, name string) (*rpc.BoolReply, error) {
	var reply rpc.BoolReply
	arguments := rpc.SellArguments{
		Signer: signer,
		Owner:  owner,
		Name:   name,
	}
	if err := client.client.Call("MicroCow.Sell", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Bury - clear all dead cows from the local records
func (client *Client) Bury(signer string) (*rpc.BoolReply, error) {
	var reply rpc.BoolReply
	arguments := rpc.BuryArguments{
		Signer: signer,
	}
	if err := client.client.Call("MicroCow.Bury", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// DeleteBuyNotification - drop the oldest buy outcome
func (client *Client) DeleteBuyNotification(signer string) (*rpc.BoolReply, error) {
	var reply rpc.BoolReply
	arguments := rpc.NotificationArguments{
		Signer: signer,
	}
	if err := client.client.Call("MicroCow.DeleteBuyNotification", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// DeleteSellNotification - drop the oldest sell outcome
func (client *Client) DeleteSellNotification(signer string) (*rpc.BoolReply, error) {
	var reply rpc.BoolReply
	arguments := rpc.NotificationArguments{
		Signer: signer,
	}
	if err := client.client.Call("MicroCow.DeleteSellNotification", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
