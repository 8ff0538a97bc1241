package input

import (
	"net/url"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// charsetDecoder returns a decoder from charset to UTF-8, or nil when no
// conversion is needed. Labels follow the WHATWG encoding list, so "latin1"
// and "ISO-8859-1" both select windows-1252.
func charsetDecoder(charset string) (*encoding.Decoder, error) {
	if charset == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, err
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return nil, nil
	}
	return enc.NewDecoder(), nil
}

// transcodeValues converts decoded form names and values with dec.
func transcodeValues(values url.Values, dec *encoding.Decoder) (url.Values, error) {
	out := make(url.Values, len(values))
	for name, list := range values {
		key, err := dec.String(name)
		if err != nil {
			return nil, err
		}
		for _, v := range list {
			s, err := dec.String(v)
			if err != nil {
				return nil, err
			}
			out[key] = append(out[key], s)
		}
	}
	return out, nil
}
