package sink

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/boxfit/pkg/errors"
)

// RenderJSON serializes placements to pretty-printed JSON.
// A single placement is written as an object, several as an array.
func RenderJSON(placements ...Placement) ([]byte, error) {
	for _, p := range placements {
		if !p.Finite() {
			return nil, errors.New(errors.ErrCodeInvalidDimension,
				"placement %q has a non-finite output %+v", p.Sizing, p.Output)
		}
	}

	var v any = placements
	if len(placements) == 1 {
		v = placements[0]
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode placement")
	}
	return append(data, '\n'), nil
}

// WritePlacementFile writes placements as JSON to path.
func WritePlacementFile(path string, placements ...Placement) error {
	data, err := RenderJSON(placements...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
