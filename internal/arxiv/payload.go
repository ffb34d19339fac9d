package arxiv

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// StringList unmarshals from either a JSON array of strings or a single
// string (the payload's preference defaults allow both shapes).
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}
	// Malformed preference defaults degrade to empty, not to a load failure.
	*s = nil
	return nil
}

// LoadPayload reads and decodes a digest payload file.
func LoadPayload(path string) (Payload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("read payload %s: %w", path, err)
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("parse payload %s: %w", path, err)
	}
	if len(p.Sources) == 0 {
		return Payload{}, fmt.Errorf("payload %s contains no sources", path)
	}
	return p, nil
}

// SavePayload writes a digest payload file.
func SavePayload(path string, p Payload) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write payload %s: %w", path, err)
	}
	return nil
}

// SourceKeys returns the payload's source keys in stable sorted order.
func (p Payload) SourceKeys() []string {
	keys := make([]string, 0, len(p.Sources))
	for key := range p.Sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ResolveSource returns the requested source key if it exists, otherwise the
// payload default, otherwise the first key in sorted order.
func (p Payload) ResolveSource(requested string) string {
	if _, ok := p.Sources[requested]; ok {
		return requested
	}
	if _, ok := p.Sources[p.DefaultSource]; ok {
		return p.DefaultSource
	}
	keys := p.SourceKeys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
