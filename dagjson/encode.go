package dagjson

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"

	"github.com/argumentcomputer/sp-ipld/ipld"
)

type encoder struct {
	buf []byte
}

func (e *encoder) encodeNode(n ipld.Node) error {
	switch n.Kind() {
	case ipld.KindNull:
		e.buf = append(e.buf, "null"...)
		return nil
	case ipld.KindBool:
		if n.Bool() {
			e.buf = append(e.buf, "true"...)
		} else {
			e.buf = append(e.buf, "false"...)
		}
		return nil
	case ipld.KindInt:
		e.buf = append(e.buf, n.Int().String()...)
		return nil
	case ipld.KindFloat:
		return e.encodeFloat(n.Float())
	case ipld.KindString:
		return e.encodeString(n.String())
	case ipld.KindBytes:
		e.buf = append(e.buf, `{"/":{"bytes":"`...)
		e.buf = append(e.buf, base64.RawStdEncoding.EncodeToString(n.Bytes())...)
		e.buf = append(e.buf, `"}}`...)
		return nil
	case ipld.KindList:
		items := n.List()
		e.buf = append(e.buf, '[')
		for i, item := range items {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			if err := e.encodeNode(item); err != nil {
				return err
			}
		}
		e.buf = append(e.buf, ']')
		return nil
	case ipld.KindMap:
		entries := n.Entries()
		e.buf = append(e.buf, '{')
		for i, ent := range entries {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			if err := e.encodeString(ent.Key); err != nil {
				return err
			}
			e.buf = append(e.buf, ':')
			if err := e.encodeNode(ent.Value); err != nil {
				return err
			}
		}
		e.buf = append(e.buf, '}')
		return nil
	case ipld.KindLink:
		e.buf = append(e.buf, `{"/":`...)
		if err := e.encodeString(n.Link().String()); err != nil {
			return err
		}
		e.buf = append(e.buf, '}')
		return nil
	default:
		return &NumberOutOfRangeError{Literal: "unknown kind"}
	}
}

func (e *encoder) encodeFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &NumberOutOfRangeError{Literal: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// strconv's 'g' form omits the fraction for integral values (e.g.
	// "1e+10" or "1"); DAG-JSON requires a float to be visibly a float, so
	// force a trailing ".0" when neither a '.' nor an exponent is present.
	hasFractionMarker := false
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			hasFractionMarker = true
			break
		}
	}
	if !hasFractionMarker {
		s += ".0"
	}
	e.buf = append(e.buf, s...)
	return nil
}

func (e *encoder) encodeString(s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	e.buf = append(e.buf, b...)
	return nil
}
