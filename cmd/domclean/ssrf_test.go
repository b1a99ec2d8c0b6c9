package main

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSSRFProtection(t *testing.T) {
	t.Setenv("DOMCLEAN_TEST_ALLOW_LOCAL", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secret internal data"))
	}))
	defer srv.Close()

	_, _, err := fetchHTML(srv.URL, 5*time.Second, defaultUA)
	if err == nil {
		t.Fatal("expected error fetching local URL, got success")
	}
	if !strings.Contains(err.Error(), "blocked connection") {
		t.Errorf("expected 'blocked connection' error, got: %v", err)
	}
}

func TestIsPrivateIP_Loopback(t *testing.T) {
	t.Setenv("DOMCLEAN_TEST_ALLOW_LOCAL", "")
	if !isPrivateIP(net.ParseIP("127.0.0.1")) {
		t.Error("127.0.0.1 should be private")
	}
	if !isPrivateIP(net.ParseIP("::1")) {
		t.Error("::1 should be private")
	}
}

func TestIsPrivateIP_RFC1918(t *testing.T) {
	t.Setenv("DOMCLEAN_TEST_ALLOW_LOCAL", "")
	privateIPs := []string{
		"10.0.0.1",
		"10.255.255.255",
		"172.16.0.1",
		"172.31.255.255",
		"192.168.0.1",
		"192.168.255.255",
	}
	for _, ip := range privateIPs {
		if !isPrivateIP(net.ParseIP(ip)) {
			t.Errorf("%s should be private", ip)
		}
	}
}

func TestIsPrivateIP_PublicIPs(t *testing.T) {
	t.Setenv("DOMCLEAN_TEST_ALLOW_LOCAL", "")
	publicIPs := []string{
		"8.8.8.8",
		"1.1.1.1",
		"203.0.113.1",
		"93.184.216.34",
	}
	for _, ip := range publicIPs {
		if isPrivateIP(net.ParseIP(ip)) {
			t.Errorf("%s should be public", ip)
		}
	}
}

func TestIsPrivateIP_TestOverride(t *testing.T) {
	t.Setenv("DOMCLEAN_TEST_ALLOW_LOCAL", "1")
	if isPrivateIP(net.ParseIP("127.0.0.1")) {
		t.Error("override should allow loopback")
	}
}
