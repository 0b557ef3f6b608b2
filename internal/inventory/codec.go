package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/xtding233/aura-gacha/internal/aura"
)

// Encode serializes the inventory as a JSON array. A nil slice encodes as [].
func Encode(auras []aura.Aura) ([]byte, error) {
	if auras == nil {
		auras = []aura.Aura{}
	}
	b, err := json.Marshal(auras)
	if err != nil {
		return nil, fmt.Errorf("encode inventory: %w", err)
	}
	return b, nil
}

// Decode parses a blob written by Encode. Any aura that cannot be rendered
// makes the whole blob corrupt.
func Decode(b []byte) ([]aura.Aura, error) {
	var auras []aura.Aura
	if err := json.Unmarshal(b, &auras); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	for i, a := range auras {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrCorruptBlob, i, err)
		}
	}
	return auras, nil
}
