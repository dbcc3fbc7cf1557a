package hostname

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"http://evil.test/page", "evil.test", false},
		{"https://Example.COM:8443/path?q=1", "example.com", false},
		{"evil.test", "evil.test", false},
		{"EVIL.test/page", "evil.test", false},
		{"http://sub.evil.test/", "sub.evil.test", false},
		{"http://sub.evil.test./", "sub.evil.test", false},
		{"http://127.0.0.1:8080/", "127.0.0.1", false},
		{"http://[::1]:8080/", "::1", false},
		{"http://bücher.example/", "xn--bcher-kva.example", false},
		{"", "", true},
		{"   ", "", true},
		{"http:///path-only", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Extract(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Extract(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if _, err := Normalize("."); !errors.Is(err, ErrEmptyHost) {
		t.Errorf("Normalize(\".\") error = %v, want ErrEmptyHost", err)
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"playground.bfl.ai", "bfl.ai"},
		{"www.bbc.co.uk", "bbc.co.uk"},
		{"example.com", "example.com"},
		{"localhost", "localhost"},
		{"10.0.0.1", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := Root(tt.host); got != tt.want {
				t.Errorf("Root(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}
