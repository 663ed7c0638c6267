package remote

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// The backend does not guarantee a uniform create-reservation response:
// the record may sit under "reservation" or be the body itself, and its
// identifier may be under "id" or "reservation_id". Extraction is an
// ordered list of probes; the first hit wins, and exhausting every probe
// is an explicit shape error — never a silent default or a synthesized
// id.

type recordProbe func(body map[string]json.RawMessage) (map[string]json.RawMessage, bool)

var recordProbes = []recordProbe{
	// Nested under "reservation".
	func(body map[string]json.RawMessage) (map[string]json.RawMessage, bool) {
		raw, ok := body["reservation"]
		if !ok {
			return nil, false
		}
		var record map[string]json.RawMessage
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, false
		}
		return record, true
	},
	// The body itself is the record.
	func(body map[string]json.RawMessage) (map[string]json.RawMessage, bool) {
		return body, true
	},
}

var idFields = []string{"id", "reservation_id"}

// ExtractReservationID resolves the reservation identifier from a raw
// create-reservation response body.
func ExtractReservationID(raw []byte) (string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", &ResponseShapeError{Reason: "response body is not a JSON object"}
	}

	for _, probe := range recordProbes {
		record, ok := probe(body)
		if !ok {
			continue
		}
		for _, field := range idFields {
			if id, ok := decodeID(record[field]); ok {
				return id, nil
			}
		}
	}
	return "", &ResponseShapeError{Reason: "no reservation id in response"}
}

// decodeID accepts string ids as-is and normalizes numeric ids to their
// decimal string form.
func decodeID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}
