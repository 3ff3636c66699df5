// Package featureflags evaluates feature flags defined in a simple
// comma-separated key=value list, e.g. "liked_status=on,new_feed=25%".
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

type flagKind int

const (
	flagOff flagKind = iota
	flagOn
	flagPercent
)

type flag struct {
	kind    flagKind
	percent int
}

// Manager holds parsed flags. A nil Manager evaluates every flag as off.
type Manager struct {
	flags map[string]flag
	raw   map[string]string
}

// NewManager parses a comma-separated flag list. Malformed pairs and
// unrecognized values are dropped.
func NewManager(list string) *Manager {
	m := &Manager{
		flags: make(map[string]flag),
		raw:   make(map[string]string),
	}

	for _, pair := range strings.Split(list, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := normalize(parts[0])
		value := normalize(parts[1])
		if name == "" || value == "" {
			continue
		}
		parsed, ok := parseValue(value)
		if !ok {
			continue
		}
		m.flags[name] = parsed
		m.raw[name] = value
	}

	return m
}

func parseValue(value string) (flag, bool) {
	switch value {
	case "on", "true", "1":
		return flag{kind: flagOn}, true
	case "off", "false", "0":
		return flag{kind: flagOff}, true
	}
	if pctRaw, ok := strings.CutSuffix(value, "%"); ok {
		pct, err := strconv.Atoi(pctRaw)
		if err != nil || pct < 0 || pct > 100 {
			return flag{}, false
		}
		return flag{kind: flagPercent, percent: pct}, true
	}
	return flag{}, false
}

// Enabled reports whether a flag is on for the given user. Percentage flags
// roll out deterministically per user; userID 0 (anonymous) never falls
// inside a partial rollout. Unknown flags are off.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	f, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch f.kind {
	case flagOn:
		return true
	case flagPercent:
		if f.percent >= 100 {
			return true
		}
		if f.percent <= 0 || userID == 0 {
			return false
		}
		return bucket(name, userID) < f.percent
	}
	return false
}

// Raw returns a copy of the configured flag values as written.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.raw))
	for k, v := range m.raw {
		out[k] = v
	}
	return out
}

// Snapshot evaluates every flag for one user.
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

// bucket maps a (flag, user) pair onto 0..99. The hash keeps a user's
// bucket stable across evaluations and restarts.
func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
