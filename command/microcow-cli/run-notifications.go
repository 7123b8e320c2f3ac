// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/microcow/microcowd/command/microcow-cli/rpccalls"
	"github.com/microcow/microcowd/rpc"
)

func runNotifications(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetNotifications()
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runDeleteNotification(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signer, err := checkSigner(m.signer)
	if nil != err {
		return err
	}

	queue := c.String("queue")

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	var response *rpc.BoolReply
	switch queue {
	case "buy":
		response, err = client.DeleteBuyNotification(signer)
	case "sell":
		response, err = client.DeleteSellNotification(signer)
	default:
		return ErrRequiredNotificationQueue
	}
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
