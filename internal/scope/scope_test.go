package scope

import (
	"reflect"
	"testing"
)

func TestInScope(t *testing.T) {
	sample := Scope{"google.com", "*.example.com", "192.168.1.0/24"}

	testCases := []struct {
		name   string
		target string
		scope  Scope
		want   bool
	}{
		{name: "Literal entry", target: "google.com", scope: sample, want: true},
		{name: "Wildcard subdomain", target: "test.example.com", scope: sample, want: true},
		{name: "IP inside CIDR", target: "192.168.1.1", scope: sample, want: true},
		{name: "Unrelated domain", target: "yahoo.com", scope: sample, want: false},
		{name: "IP outside CIDR", target: "192.168.2.1", scope: sample, want: false},
		{name: "Wildcard is a plain suffix test", target: "notexample.com", scope: Scope{"*.example.com"}, want: true},
		{name: "Wildcard suffix missing", target: "example.org", scope: Scope{"*.example.com"}, want: false},
		{name: "Substring containment", target: "test.example.com", scope: Scope{"example"}, want: true},
		{name: "Hostname never matches CIDR", target: "router.local", scope: Scope{"10.0.0.0/8"}, want: false},
		{name: "CIDR with host bits set", target: "10.1.2.3", scope: Scope{"10.9.9.9/8"}, want: true},
		{name: "Malformed CIDR is skipped", target: "10.1.2.3", scope: Scope{"10.0.0.0/99", "10.1"}, want: true},
		{name: "Blank entry matches nothing", target: "anything.com", scope: Scope{"", "  "}, want: false},
		{name: "Empty scope", target: "google.com", scope: nil, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InScope(tc.target, tc.scope); got != tc.want {
				t.Errorf("InScope(%q, %v) = %v, want %v", tc.target, tc.scope, got, tc.want)
			}
		})
	}
}

func TestInScopeCIDRMembership(t *testing.T) {
	network := Scope{"172.16.0.0/12"}
	inside := []string{"172.16.0.1", "172.20.10.10", "172.31.255.255"}
	outside := []string{"172.15.255.255", "172.32.0.0", "8.8.8.8"}

	for _, ip := range inside {
		if !network.Contains(ip) {
			t.Errorf("expected %s to be inside %v", ip, network)
		}
	}
	for _, ip := range outside {
		if network.Contains(ip) {
			t.Errorf("expected %s to be outside %v", ip, network)
		}
	}
}

func TestParse(t *testing.T) {
	got := Parse(" google.com, *.example.com ,, 192.168.1.0/24 ,")
	want := Scope{"google.com", "*.example.com", "192.168.1.0/24"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse mismatch:\n got:  %v\n want: %v", got, want)
	}
	if s := got.String(); s != "google.com, *.example.com, 192.168.1.0/24" {
		t.Errorf("unexpected String(): %q", s)
	}
}
