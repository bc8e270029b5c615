package enrichment

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// Encode renders records as a JSON array. Output is deterministic for equal input.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(records); err != nil {
		return nil, fmt.Errorf("encode enriched records: %w", err)
	}

	return append([]byte(nil), bytes.TrimRight(buf.B, "\n")...), nil
}

func Decode(blob []byte) ([]Record, error) {
	var out []Record
	if err := sonic.ConfigStd.Unmarshal(blob, &out); err != nil {
		return nil, fmt.Errorf("decode enriched records: %w", err)
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}
