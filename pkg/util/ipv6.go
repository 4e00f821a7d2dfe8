package util

import (
	"net/netip"
	"strings"
)

// NormalizeIPv6Word canonicalizes a single IPv6 literal: lower case,
// zero-compressed, leading zeros dropped, matching what the daemon
// itself prints. A word that does not parse as an IPv6 address is
// returned unchanged.
func NormalizeIPv6Word(word string) string {
	if !strings.Contains(word, ":") {
		return word
	}
	addr, err := netip.ParseAddr(word)
	if err != nil || !addr.Is6() {
		return word
	}
	return addr.String()
}

// NormalizeIPv6Line rewrites every IPv6 literal on a config line to its
// canonical form so that textual comparison against daemon output works.
// Words without a colon pass through untouched, as do malformed literals.
func NormalizeIPv6Line(line string) string {
	if !strings.Contains(line, ":") {
		return line
	}
	words := strings.Split(line, " ")
	for i, word := range words {
		words[i] = NormalizeIPv6Word(word)
	}
	return strings.Join(words, " ")
}
