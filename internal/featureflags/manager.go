// Package featureflags evaluates runtime feature toggles parsed from a single
// configuration string, e.g. "open_signup=on,beta_catalog=25%,legacy_login=off".
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

type flagMode int

const (
	modeOff flagMode = iota
	modeOn
	modeRollout
)

// flag is one parsed toggle. Rollout flags carry the percentage of accounts
// they apply to.
type flag struct {
	mode    flagMode
	percent int
}

// Manager holds parsed feature flags. A nil Manager evaluates every flag to off.
type Manager struct {
	flags map[string]flag
}

// NewManager parses a comma-separated key=value flag list. Malformed or empty
// pairs are dropped silently; values may be on/true/1, off/false/0, or "N%".
func NewManager(raw string) *Manager {
	flags := make(map[string]flag)

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := normalize(parts[0])
		value := normalize(parts[1])
		if name == "" || value == "" {
			continue
		}
		if f, ok := parseValue(value); ok {
			flags[name] = f
		}
	}

	return &Manager{flags: flags}
}

func parseValue(value string) (flag, bool) {
	switch value {
	case "on", "true", "1":
		return flag{mode: modeOn}, true
	case "off", "false", "0":
		return flag{mode: modeOff}, true
	}

	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return flag{}, false
		}
		switch {
		case pct <= 0:
			return flag{mode: modeOff}, true
		case pct >= 100:
			return flag{mode: modeOn}, true
		}
		return flag{mode: modeRollout, percent: pct}, true
	}

	return flag{}, false
}

// Enabled reports whether a flag is on for the given account. Rollout flags
// bucket accounts deterministically, so an account keeps its answer across
// restarts. Unknown flags and userID 0 under a rollout evaluate to off.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	f, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch f.mode {
	case modeOn:
		return true
	case modeRollout:
		if userID == 0 {
			return false
		}
		return rolloutBucket(name, userID) < f.percent
	}
	return false
}

// Raw returns the configured flags as strings, suitable for the admin
// inspection endpoint. The map is a copy.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.flags))
	for name, f := range m.flags {
		switch f.mode {
		case modeOn:
			out[name] = "on"
		case modeRollout:
			out[name] = strconv.Itoa(f.percent) + "%"
		default:
			out[name] = "off"
		}
	}
	return out
}

// Snapshot evaluates every flag for one account.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	if m == nil {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
