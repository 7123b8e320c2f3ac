// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/microcow/microcowd/command/microcow-cli/rpccalls"
)

func runInitialise(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signer, err := checkSigner(m.signer)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Initialise(signer)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runSubscribe(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signer, err := checkSigner(m.signer)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Subscribe(signer)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
