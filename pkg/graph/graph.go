package graph

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Element Serialization API
// =============================================================================

// ReadElementsFile reads an element sequence from a JSON file.
func ReadElementsFile(path string) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadElements(f)
}

// ReadElements decodes an element sequence from r. It accepts a bare JSON
// array of elements or an object wrapping one under "elements". Arrays are
// decoded one element at a time so large inputs are never held twice.
func ReadElements(r io.Reader) ([]Element, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	dec := json.NewDecoder(br)
	switch first {
	case '[':
		return readElementArray(dec)
	case '{':
		var wrapped struct {
			Elements []Element `json:"elements"`
		}
		if err := dec.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return wrapped.Elements, nil
	default:
		return nil, fmt.Errorf("decode: expected array or object, got %q", first)
	}
}

// UnmarshalElements decodes an element sequence from JSON bytes.
func UnmarshalElements(data []byte) ([]Element, error) {
	return ReadElements(bytes.NewReader(data))
}

// MarshalElements encodes elements as a compact JSON array.
func MarshalElements(elems []Element) ([]byte, error) {
	return json.Marshal(elems)
}

// WriteElementsFile writes elements to a JSON file.
func WriteElementsFile(elems []Element, path string) error {
	data, err := MarshalElements(elems)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

func readElementArray(dec *json.Decoder) ([]Element, error) {
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	var elems []Element
	for dec.More() {
		var e Element
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode element %d: %w", len(elems), err)
		}
		elems = append(elems, e)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return elems, nil
}
