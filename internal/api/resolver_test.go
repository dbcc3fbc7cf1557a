package api

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveIPLiteral(t *testing.T) {
	r := NewDNSResolver(time.Second, nil)

	tests := []struct {
		in   string
		want string
	}{
		{in: "127.0.0.1", want: "127.0.0.1"},
		{in: "10.1.2.3", want: "10.1.2.3"},
		{in: "::1", want: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFailure(t *testing.T) {
	errUnreachable := errors.New("dns unreachable")
	r := &DNSResolver{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				return nil, errUnreachable
			},
		},
		timeout: time.Second,
	}

	_, err := r.Resolve(context.Background(), "nothing-here.invalid")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nothing-here.invalid")
}
