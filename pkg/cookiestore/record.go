package cookiestore

import (
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// Record is one cookie value for one host.
type Record struct {
	Name      string
	Value     string
	ExpiresAt time.Time
	// Session is set for session-only cookies, which have no ExpiresAt and
	// live only in process memory.
	Session bool
}

// Expired reports whether the record is logically absent at now.
func (r Record) Expired(now time.Time) bool {
	return !r.Session && !r.ExpiresAt.After(now)
}

// storedCookie is the persisted shape of a Record.
type storedCookie struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (c storedCookie) expiresAt() time.Time {
	return time.UnixMilli(c.ExpiresAt)
}

func (c storedCookie) live(now time.Time) bool {
	return c.Name != "" && c.expiresAt().After(now)
}

// snapshot is host -> name -> cookie.
type snapshot map[string]map[string]storedCookie

func decodeSnapshot(blob []byte) (snapshot, error) {
	snap := snapshot{}
	if len(blob) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(blob, &snap); err != nil {
		return snapshot{}, err
	}
	// A literal null decodes cleanly into a nil map.
	if snap == nil {
		return snapshot{}, nil
	}
	for host, jar := range snap {
		if jar == nil {
			delete(snap, host)
			continue
		}
		for name, c := range jar {
			// The map key is authoritative; a blank inner name is repaired from it.
			if c.Name == "" && name != "" {
				c.Name = name
				jar[name] = c
			}
		}
	}
	return snap, nil
}

func (s snapshot) encode() ([]byte, error) {
	return json.Marshal(s)
}

// prune drops expired or nameless cookies and empty hosts. It reports
// whether anything was removed.
func (s snapshot) prune(now time.Time) bool {
	changed := false
	for host, jar := range s {
		if pruneJar(jar, now) {
			changed = true
		}
		if len(jar) == 0 {
			delete(s, host)
			changed = true
		}
	}
	return changed
}

func pruneJar(jar map[string]storedCookie, now time.Time) bool {
	changed := false
	for name, c := range jar {
		if name == "" || !c.live(now) {
			delete(jar, name)
			changed = true
		}
	}
	return changed
}

func sortedNames[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
