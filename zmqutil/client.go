// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/microcow/microcowd/fault"
)

const (
	publicKeySize  = 32
	privateKeySize = 32
	identifierSize = 32
)

// Client - a connection to one CURVE server socket
//
// the socket is recreated on Reconnect so a stuck REQ state machine
// can always be abandoned
type Client struct {
	sync.Mutex

	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	socketType      zmq.Type
	socket          *zmq.Socket
	timeout         time.Duration
}

// NewClient - create a client socket usually of type zmq.REQ or
// zmq.SUB
func NewClient(socketType zmq.Type, privateKey []byte, publicKey []byte, timeout time.Duration) (*Client, error) {

	if len(publicKey) != publicKeySize {
		return nil, fault.ErrInvalidPublicKeyFile
	}
	if len(privateKey) != privateKeySize {
		return nil, fault.ErrInvalidPrivateKeyFile
	}

	client := &Client{
		publicKey:       make([]byte, publicKeySize),
		privateKey:      make([]byte, privateKeySize),
		serverPublicKey: make([]byte, publicKeySize),
		socketType:      socketType,
		timeout:         timeout,
	}
	copy(client.privateKey, privateKey)
	copy(client.publicKey, publicKey)
	return client, nil
}

// Connect - dial a specific server identified by its public key
//
// address is a canonical "tcp://host:port" endpoint
func (client *Client) Connect(address string, serverPublicKey []byte) error {

	if len(serverPublicKey) != publicKeySize {
		return fault.ErrInvalidPublicKeyFile
	}

	client.Lock()
	defer client.Unlock()

	client.closeSocket()
	client.address = address
	copy(client.serverPublicKey, serverPublicKey)

	return client.openSocket()
}

// Reconnect - drop the current socket and dial again
func (client *Client) Reconnect() error {
	client.Lock()
	defer client.Unlock()

	client.closeSocket()
	return client.openSocket()
}

// Close - disconnect and destroy the underlying socket
func (client *Client) Close() error {
	client.Lock()
	defer client.Unlock()

	return client.closeSocket()
}

// IsConnected - whether a socket is currently open
func (client *Client) IsConnected() bool {
	client.Lock()
	defer client.Unlock()

	return nil != client.socket
}

// Subscribe - set a topic filter, only valid for zmq.SUB sockets
func (client *Client) Subscribe(topic string) error {
	client.Lock()
	defer client.Unlock()

	if nil == client.socket {
		return fault.ErrNotSubscribed
	}
	return client.socket.SetSubscribe(topic)
}

// Send - transmit a multipart message
func (client *Client) Send(items ...[]byte) error {
	client.Lock()
	defer client.Unlock()

	if nil == client.socket {
		return fault.ErrMessageUndeliverable
	}

	last := len(items) - 1
	for i, item := range items {
		flag := zmq.Flag(0)
		if i != last {
			flag = zmq.SNDMORE
		}
		_, err := client.socket.SendBytes(item, flag)
		if nil != err {
			return err
		}
	}
	return nil
}

// Receive - read one multipart message
func (client *Client) Receive() ([][]byte, error) {
	client.Lock()
	defer client.Unlock()

	if nil == client.socket {
		return nil, fault.ErrMessageUndeliverable
	}
	return client.socket.RecvMessageBytes(0)
}

// Add - register the underlying socket with a poller
func (client *Client) Add(poller *zmq.Poller, state zmq.State) error {
	client.Lock()
	defer client.Unlock()

	if nil == client.socket {
		return fault.ErrMessageUndeliverable
	}
	poller.Add(client.socket, state)
	return nil
}

// HasSocket - whether the polled socket belongs to this client
func (client *Client) HasSocket(socket *zmq.Socket) bool {
	client.Lock()
	defer client.Unlock()

	return client.socket == socket
}

// CloseClients - disconnect a whole list ignoring nil entries
func CloseClients(clients []*Client) {
	for _, client := range clients {
		if nil != client {
			client.Close()
		}
	}
}

// String - the connected address for diagnostics
func (client *Client) String() string {
	return fmt.Sprintf("%s@%s", client.socketType, client.address)
}

// must hold the lock
func (client *Client) openSocket() error {

	socket, err := zmq.NewSocket(client.socketType)
	if nil != err {
		return err
	}

	// local identity is a secure random value
	randomIdBytes := make([]byte, identifierSize)
	_, err = rand.Read(randomIdBytes)
	if nil != err {
		socket.Close()
		return err
	}

	// set up as client
	err = socket.SetCurveServer(0)
	if nil != err {
		goto failure
	}
	err = socket.SetCurvePublickey(string(client.publicKey))
	if nil != err {
		goto failure
	}
	err = socket.SetCurveSecretkey(string(client.privateKey))
	if nil != err {
		goto failure
	}
	err = socket.SetIdentity(string(randomIdBytes))
	if nil != err {
		goto failure
	}

	// destination identity is its public key
	err = socket.SetCurveServerkey(string(client.serverPublicKey))
	if nil != err {
		goto failure
	}

	err = socket.SetLinger(0)
	if nil != err {
		goto failure
	}

	// a zero timeout leaves the socket fully blocking
	if client.timeout > 0 {
		err = socket.SetRcvtimeo(client.timeout)
		if nil != err {
			goto failure
		}
		err = socket.SetSndtimeo(client.timeout)
		if nil != err {
			goto failure
		}
	}
	err = socket.SetIpv6(true)
	if nil != err {
		goto failure
	}

	err = socket.Connect(client.address)
	if nil != err {
		goto failure
	}

	client.socket = socket
	return nil

failure:
	socket.Close()
	return err
}

// must hold the lock
func (client *Client) closeSocket() error {
	if nil == client.socket {
		return nil
	}
	err := client.socket.Close()
	client.socket = nil
	return err
}
