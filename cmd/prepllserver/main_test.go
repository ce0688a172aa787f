package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_splitListenAddress(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectAddr string
		expectPort int
		expectErr  bool
	}{
		{name: "empty", input: ""},
		{name: "port only", input: ":6001", expectPort: 6001},
		{name: "address and port", input: "192.168.0.2:6001", expectAddr: "192.168.0.2", expectPort: 6001},
		{name: "no port", input: "localhost", expectErr: true},
		{name: "bad port", input: "localhost:http", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			addr, port, err := splitListenAddress(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expectAddr, addr)
			assert.Equal(tc.expectPort, port)
		})
	}
}
