package karabiner

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ErrProfileNotFound is returned by MergeProfile when the target file has no
// profile with the requested name.
var ErrProfileNotFound = errors.New("profile not found")

// Marshal encodes v the way the host writes its own file: two-space
// indentation, no HTML escaping and a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encode karabiner config")
	}
	return buf.Bytes(), nil
}

// MergeProfile replaces the complex_modifications of the profile named
// p.Name inside an existing karabiner.json and returns the new document.
// Every other key of the file is kept. Object keys come back sorted.
func MergeProfile(existing []byte, p Profile) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(existing, &doc); err != nil {
		return nil, errors.Wrap(err, "parse existing karabiner config")
	}
	var profiles []map[string]json.RawMessage
	if raw, ok := doc["profiles"]; ok {
		if err := json.Unmarshal(raw, &profiles); err != nil {
			return nil, errors.Wrap(err, "parse profiles")
		}
	}

	cm, err := Marshal(p.ComplexModifications)
	if err != nil {
		return nil, err
	}

	found := false
	for _, prof := range profiles {
		var name string
		if err := json.Unmarshal(prof["name"], &name); err != nil || name != p.Name {
			continue
		}
		prof["complex_modifications"] = json.RawMessage(cm)
		found = true
		break
	}
	if !found {
		return nil, errors.WithHintf(errors.Wrapf(ErrProfileNotFound, "%q", p.Name),
			"create the profile in Karabiner-Elements first, or write a fresh file without --merge")
	}

	raw, err := json.Marshal(profiles)
	if err != nil {
		return nil, errors.Wrap(err, "encode profiles")
	}
	doc["profiles"] = raw

	var out map[string]any
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode karabiner config")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "normalize karabiner config")
	}
	return Marshal(out)
}
