package wordlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
)

var (
	errNotArray = errors.New("top-level value must be an array")
)

// Decode parses a response body into fresh word entries.
//
// An empty body is a network failure (nothing was returned). Anything else
// that is not an array of {original, translation} string objects is a parse
// failure.
func Decode(body []byte) ([]domain.WordEntry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, domain.NewNoDataError()
	}

	// json.Unmarshal accepts null into a slice; the wire format does not.
	if trimmed[0] != '[' {
		return nil, domain.NewParseError(errNotArray)
	}

	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, domain.NewParseError(err)
	}

	entries := make([]domain.WordEntry, 0, len(records))
	for i, rec := range records {
		if err := validateRecord(rec); err != nil {
			return nil, domain.NewParseError(fmt.Errorf("item %d: %w", i, err))
		}
		entries = append(entries, domain.NewWordEntry(*rec.Original, *rec.Translation))
	}

	return entries, nil
}

func validateRecord(rec Record) error {
	switch {
	case rec.Original == nil:
		return errors.New(`missing required field "original"`)
	case rec.Translation == nil:
		return errors.New(`missing required field "translation"`)
	case *rec.Original == "":
		return errors.New(`field "original" must not be empty`)
	case *rec.Translation == "":
		return errors.New(`field "translation" must not be empty`)
	}
	return nil
}
