package vtysh

import (
	"strings"

	"github.com/newtron-network/vtysync/pkg/config"
	"github.com/newtron-network/vtysync/pkg/util"
)

// Banner lines "show running-config" prints ahead of the actual config.
var runningBanners = map[string]bool{
	"Building configuration...": true,
	"Current configuration:":    true,
}

// LoadFile builds a config tree from a desired-configuration file. The
// file is passed through the client's marker pass so the parser sees
// "end" terminators, and IPv6 literals are canonicalized to match how
// the daemon prints them. Failure to mark the file is a load failure.
func LoadFile(c Client, path string) (*config.Tree, error) {
	util.Debugf("Loading config from file %s", path)

	marked, err := c.MarkFile(path)
	if err != nil {
		return nil, util.NewLoadError(path, err)
	}

	var lines []string
	for _, line := range strings.Split(marked, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, ":") {
			line = util.NormalizeIPv6Line(line)
		}
		lines = append(lines, line)
	}

	return config.Parse(lines), nil
}

// LoadRunning builds a config tree from the daemon's live running
// configuration: fetch it, strip the leading banner, re-mark the text
// through the client, and parse. The daemon already prints IPv6
// literals canonically, so no normalization pass is needed here.
func LoadRunning(c Client) (*config.Tree, error) {
	util.Debugf("Loading config from show running-config")

	text, err := c.ShowRunning()
	if err != nil {
		return nil, util.NewLoadError("show running-config", err)
	}

	marked, err := c.MarkText(stripBanner(text))
	if err != nil {
		return nil, util.NewLoadError("show running-config", err)
	}

	var lines []string
	for _, line := range strings.Split(marked, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || runningBanners[line] {
			continue
		}
		lines = append(lines, line)
	}

	return config.Parse(lines), nil
}

// stripBanner drops the banner and the blank line after it, leaving
// only config text for the marker pass.
func stripBanner(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if runningBanners[trimmed] {
			continue
		}
		if trimmed == "" && len(kept) == 0 {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
