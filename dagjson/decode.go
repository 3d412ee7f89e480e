package dagjson

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/argumentcomputer/sp-ipld/cid"
	"github.com/argumentcomputer/sp-ipld/ipld"
)

type jsonDecoder struct {
	dec  *json.Decoder
	opts DecOptions
}

func newJSONDecoder(data []byte, opts DecOptions) *jsonDecoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return &jsonDecoder{dec: dec, opts: opts}
}

// expectEOF fails with TrailingBytesError if anything but whitespace
// remains after the value decodeValue already consumed.
func (d *jsonDecoder) expectEOF() error {
	_, err := d.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return &TrailingBytesError{}
}

func (d *jsonDecoder) decodeValue(depth int) (ipld.Node, error) {
	if depth > d.opts.MaxDepth {
		return ipld.Node{}, &RecursionLimitError{MaxDepth: d.opts.MaxDepth}
	}
	tok, err := d.dec.Token()
	if err != nil {
		return ipld.Node{}, &InvalidJsonError{Err: err}
	}
	switch t := tok.(type) {
	case nil:
		return ipld.Null, nil
	case bool:
		return ipld.NewBool(t), nil
	case json.Number:
		return decodeNumber(t)
	case string:
		if len(t) > d.opts.MaxStringLen {
			return ipld.Node{}, &LimitExceededError{What: "string", Limit: d.opts.MaxStringLen}
		}
		return ipld.NewString(t), nil
	case json.Delim:
		switch t {
		case '[':
			return d.decodeArray(depth)
		case '{':
			return d.decodeObject(depth)
		default:
			return ipld.Node{}, &InvalidJsonError{Err: errors.New("unexpected delimiter " + t.String())}
		}
	default:
		return ipld.Node{}, &InvalidJsonError{Err: errors.New("unrecognized token")}
	}
}

func (d *jsonDecoder) decodeArray(depth int) (ipld.Node, error) {
	items := make([]ipld.Node, 0, 8)
	for d.dec.More() {
		if len(items) >= d.opts.MaxListLen {
			return ipld.Node{}, &LimitExceededError{What: "list", Limit: d.opts.MaxListLen}
		}
		item, err := d.decodeValue(depth + 1)
		if err != nil {
			return ipld.Node{}, err
		}
		items = append(items, item)
	}
	if _, err := d.dec.Token(); err != nil { // consume ']'
		return ipld.Node{}, &InvalidJsonError{Err: err}
	}
	return ipld.NewList(items), nil
}

func (d *jsonDecoder) decodeObject(depth int) (ipld.Node, error) {
	entries := make([]ipld.Entry, 0, 8)
	seen := make(map[string]struct{}, 8)
	for d.dec.More() {
		if len(entries) >= d.opts.MaxMapPairs {
			return ipld.Node{}, &LimitExceededError{What: "object", Limit: d.opts.MaxMapPairs}
		}
		keyTok, err := d.dec.Token()
		if err != nil {
			return ipld.Node{}, &InvalidJsonError{Err: err}
		}
		key, ok := keyTok.(string)
		if !ok {
			return ipld.Node{}, &InvalidJsonError{Err: errors.New("object key is not a string")}
		}
		if _, dup := seen[key]; dup {
			return ipld.Node{}, &DuplicateKeyError{Key: key}
		}
		seen[key] = struct{}{}
		val, err := d.decodeValue(depth + 1)
		if err != nil {
			return ipld.Node{}, err
		}
		entries = append(entries, ipld.Entry{Key: key, Value: val})
	}
	if _, err := d.dec.Token(); err != nil { // consume '}'
		return ipld.Node{}, &InvalidJsonError{Err: err}
	}

	if len(entries) == 1 && entries[0].Key == LinkKey {
		return decodeEscape(entries[0].Value)
	}

	n, err := ipld.NewStringMapFromEntries(entries)
	if err != nil {
		return ipld.Node{}, err
	}
	return n, nil
}

// decodeEscape interprets the value of a single-key {"/": ...} object as
// either a link (string value) or a bytes escape (nested {"bytes": ...}).
func decodeEscape(v ipld.Node) (ipld.Node, error) {
	switch v.Kind() {
	case ipld.KindString:
		c, err := cid.Parse(v.String())
		if err != nil {
			return ipld.Node{}, &InvalidLinkEscapeError{Reason: err.Error()}
		}
		return ipld.NewLink(c), nil
	case ipld.KindMap:
		entries := v.Entries()
		if len(entries) != 1 || entries[0].Key != BytesKey || entries[0].Value.Kind() != ipld.KindString {
			return ipld.Node{}, &InvalidBytesEscapeError{Reason: "expected a single \"bytes\" key with a string value"}
		}
		raw, err := base64.RawStdEncoding.DecodeString(entries[0].Value.String())
		if err != nil {
			// Some encoders pad base64; accept that too before failing.
			raw, err = base64.StdEncoding.DecodeString(entries[0].Value.String())
			if err != nil {
				return ipld.Node{}, &InvalidBase64Error{Err: err}
			}
		}
		return ipld.NewBytes(raw), nil
	default:
		return ipld.Node{}, &InvalidLinkEscapeError{Reason: "\"/\" value is neither a string nor a bytes object"}
	}
}

func decodeNumber(t json.Number) (ipld.Node, error) {
	s := string(t)
	if !strings.ContainsAny(s, ".eE") {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return ipld.Node{}, &NumberOutOfRangeError{Literal: s}
		}
		return ipld.NewBigInt(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ipld.Node{}, &NumberOutOfRangeError{Literal: s}
	}
	return ipld.NewFloat(f), nil
}
