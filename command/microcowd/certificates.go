// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/microcow/microcowd/fault"
)

// create a self-signed certificate for the RPC listener
func makeSelfSignedCertificate(name string, certificateFilename string, privateKeyFilename string, override bool, extraHosts []string) error {

	if ensureFileExists(certificateFilename) {
		return fault.ErrCertificateFileAlreadyExists
	}

	if ensureFileExists(privateKeyFilename) {
		return fault.ErrKeyFileAlreadyExists
	}

	org := "microcowd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFilename, cert, 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFilename, key, 0600); nil != err {
		os.Remove(certificateFilename)
		return err
	}

	return nil
}

// check if a file exists
func ensureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
