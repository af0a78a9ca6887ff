package cookieheader

import "strings"

// Parse splits a cookie header into a Map.
// Segments are separated by ';' and split on the first '='. Segments without
// '=' or with an empty name are discarded. A later duplicate name overwrites
// an earlier one. Empty input yields an empty Map.
func Parse(header string) *Map {
	m := NewMap(strings.Count(header, ";") + 1)
	ParseInto(m, header)
	return m
}

// ParseInto parses header and writes its entries into dst.
func ParseInto(dst *Map, header string) {
	header = strings.TrimSpace(header)
	if header == "" {
		return
	}
	for part := range strings.SplitSeq(header, ";") {
		item := strings.TrimSpace(part)
		eq := strings.IndexByte(item, '=')
		if eq <= 0 {
			continue
		}
		name := strings.TrimSpace(item[:eq])
		if name == "" {
			continue
		}
		dst.Set(name, strings.TrimSpace(item[eq+1:]))
	}
}

// Merge parses headers in order into one Map. For a repeated name the value
// from the later argument wins.
func Merge(headers ...string) *Map {
	m := NewMap(len(headers) * 4)
	for _, h := range headers {
		ParseInto(m, h)
	}
	return m
}

// Serialize renders m as "name=value" pairs joined by "; ".
// An empty or nil map serializes to the empty string.
func Serialize(m *Map) string {
	if m.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for name, value := range m.All() {
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(value)
	}
	return sb.String()
}

// MergeHeaders is Serialize(Merge(headers...)).
func MergeHeaders(headers ...string) string {
	return Serialize(Merge(headers...))
}
