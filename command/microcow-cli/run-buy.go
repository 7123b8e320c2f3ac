// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/microcow/microcowd/command/microcow-cli/rpccalls"
)

func runBuy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signer, err := checkSigner(m.signer)
	if nil != err {
		return err
	}

	name, err := checkCowName(c.String("name"))
	if nil != err {
		return err
	}

	breed, err := checkBreed(c.String("breed"))
	if nil != err {
		return err
	}

	id, err := checkCowId(c.String("id"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Buy(signer, m.owner, id, name, breed)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
