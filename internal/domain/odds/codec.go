package odds

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// EncodeQuotes renders quotes as a JSON array, prices as decimal strings.
func EncodeQuotes(quotes []Quote) ([]byte, error) {
	if quotes == nil {
		quotes = []Quote{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(quotes); err != nil {
		return nil, fmt.Errorf("encode odds quotes: %w", err)
	}
	return append([]byte(nil), bytes.TrimRight(buf.B, "\n")...), nil
}

func DecodeQuotes(blob []byte) ([]Quote, error) {
	var out []Quote
	if err := sonic.ConfigStd.Unmarshal(blob, &out); err != nil {
		return nil, fmt.Errorf("decode odds quotes: %w", err)
	}
	if out == nil {
		out = []Quote{}
	}
	return out, nil
}
