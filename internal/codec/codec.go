// Package codec serializes full catalog states into portable budget
// snapshots and back. The wire format is versionless, UTF-8, 2-space
// indented JSON with the product list under the legacy "doors" key; decoding
// tolerates missing fields (older files) and only rejects JSON that fails to
// parse.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"doorquote/internal/model"
	"doorquote/internal/store"
)

// ErrFormatoInvalido marks snapshot content that is not parseable JSON.
// A failed decode never touches catalog state — load is all-or-nothing.
var ErrFormatoInvalido = errors.New("formato de archivo invalido")

// Codec stamps snapshots with fresh identities. The zero value uses real
// UUIDs and the wall clock; tests may pin both.
type Codec struct {
	NewID func() string
	Now   func() time.Time
}

// Serialize captures the state as a named snapshot: fresh UUID, epoch-ms
// timestamp, products/clientInfo/notes copied verbatim (no re-rounding).
// The transient editing marker is not part of the snapshot.
func (c Codec) Serialize(st store.State, name string) model.SavedBudget {
	newID := uuid.NewString
	if c.NewID != nil {
		newID = c.NewID
	}
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	info := st.ClientInfo
	return model.SavedBudget{
		ID:           newID(),
		Name:         name,
		Timestamp:    now.UnixMilli(),
		Doors:        model.CloneProducts(st.Doors),
		ClientInfo:   &info,
		GeneralNotes: st.GeneralNotes,
	}
}

// Encode renders the snapshot as 2-space-indented JSON for human-readable
// files.
func Encode(b model.SavedBudget) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec: encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses snapshot JSON. Missing fields are accepted as-is — the
// store's import coalesces them to defaults field by field. Unparseable
// content yields ErrFormatoInvalido.
func Decode(data []byte) (*model.SavedBudget, error) {
	var b model.SavedBudget
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormatoInvalido, err)
	}
	return &b, nil
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName sanitizes a user-supplied budget label into the exported file
// name: non-alphanumerics become underscores, lowercased, ".json" appended.
func FileName(name string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(name, "_")) + ".json"
}
