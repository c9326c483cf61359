package nodejs

import "encoding/json"

// indexEntry mirrors one element of https://nodejs.org/dist/index.json.
type indexEntry struct {
	Version string   `json:"version"`
	LTS     ltsField `json:"lts"`
	Date    string   `json:"date"`
}

// ltsField handles upstream's union encoding: `false` for non-LTS entries,
// a codename string ("Jod", "Iron") for LTS entries.
type ltsField struct {
	Label string
}

func (f *ltsField) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		f.Label = label
		return nil
	}

	// Anything that is not a string (false, null) means non-LTS.
	f.Label = ""
	return nil
}
