package config

import "testing"

func TestNewRedisClient_UnreachableAddress(t *testing.T) {
	client, err := NewRedisClient("127.0.0.1:1")
	if err == nil {
		client.Close()
		t.Fatal("expected connection error for unreachable redis")
	}
}
