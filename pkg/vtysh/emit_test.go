package vtysh

import (
	"reflect"
	"testing"

	"github.com/newtron-network/vtysync/pkg/config"
)

func TestBuildContextCommandDelete(t *testing.T) {
	cmd := BuildContextCommand(config.Path{"router ospf"}, true)

	want := Command{"-c", "conf t", "-c", "no router ospf"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestBuildContextCommandDeleteNested(t *testing.T) {
	// Only the final segment is negated; ancestors are entered as-is.
	cmd := BuildContextCommand(config.Path{"router bgp 10", "address-family ipv6 unicast"}, true)

	want := Command{
		"-c", "conf t",
		"-c", "router bgp 10",
		"-c", "no address-family ipv6 unicast",
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestBuildContextCommandAdd(t *testing.T) {
	cmd := BuildContextCommand(config.Path{"router bgp 10"}, false)

	want := Command{"-c", "conf t", "-c", "router bgp 10"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestBuildLineCommandDelete(t *testing.T) {
	cmd := BuildLineCommand(config.Path{"router bgp 10"}, "bgp router-id 10.0.0.1", true)

	want := Command{
		"-c", "conf t",
		"-c", "router bgp 10",
		"-c", "no bgp router-id 10.0.0.1",
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestBuildLineCommandAdd(t *testing.T) {
	cmd := BuildLineCommand(config.Path{"router bgp 10"}, "neighbor 10.0.0.2 remote-as 20", false)

	want := Command{
		"-c", "conf t",
		"-c", "router bgp 10",
		"-c", "neighbor 10.0.0.2 remote-as 20",
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestBuildLineCommandDeleteAlreadyNegated(t *testing.T) {
	// Deleting "no bgp default ipv4-unicast" issues the un-negated
	// form, never a double "no no".
	cmd := BuildLineCommand(config.Path{"router bgp 10"}, "no bgp default ipv4-unicast", true)

	want := Command{
		"-c", "conf t",
		"-c", "router bgp 10",
		"-c", "bgp default ipv4-unicast",
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestBuildLineCommandGlobalStatement(t *testing.T) {
	// Single-line statements live in the implicit global context: no
	// enter directives, just config mode and the negated line.
	cmd := BuildLineCommand(nil, "ip forwarding", true)

	want := Command{"-c", "conf t", "-c", "no ip forwarding"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %v, want %v", cmd, want)
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{"-c", "conf t", "-c", "no router ospf"}
	want := "vtysh -c 'conf t' -c 'no router ospf'"
	if got := cmd.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCommandCloneIndependent(t *testing.T) {
	orig := Command{"-c", "conf t", "-c", "no ip ospf authentication message-digest 1.1.1.1"}
	clone := orig.Clone()
	clone[3] = "no ip ospf authentication"

	if orig[3] != "no ip ospf authentication message-digest 1.1.1.1" {
		t.Error("mutating a clone must not touch the original")
	}
}
