// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the value carried by a Card.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindLogical
	KindInteger
	KindFloat
	KindComplex
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLogical:
		return "logical"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a typed FITS card value. The zero Value is KindNone (no
// value carried by the card).
type Value struct {
	Kind ValueKind

	b    bool
	i    int64
	f    float64
	c    complex128
	s    string
	dexp bool // render/parsed with FORTRAN 'D' exponent marker rather than 'E'
}

func LogicalValue(v bool) Value     { return Value{Kind: KindLogical, b: v} }
func IntegerValue(v int64) Value    { return Value{Kind: KindInteger, i: v} }
func FloatValue(v float64) Value    { return Value{Kind: KindFloat, f: v} }
func DoubleValue(v float64) Value   { return Value{Kind: KindFloat, f: v, dexp: true} }
func ComplexValue(v complex128) Value { return Value{Kind: KindComplex, c: v} }
func StringValue(v string) Value    { return Value{Kind: KindString, s: v} }
func NoneValue() Value              { return Value{Kind: KindNone} }

func (v Value) Bool() bool       { return v.b }
func (v Value) Int() int64       { return v.i }
func (v Value) Float() float64   { return v.f }
func (v Value) Complex() complex128 { return v.c }
func (v Value) Str() string      { return v.s }
func (v Value) IsDouble() bool   { return v.dexp }

// Text renders the value as plain unpadded text: T/F for logicals,
// shortest 'G' form for floats, strings without quotes.
func (v Value) Text() string {
	switch v.Kind {
	case KindNone:
		return ""
	case KindLogical:
		if v.b {
			return "T"
		}
		return "F"
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'G', -1, 64)
	case KindComplex:
		return fmt.Sprintf("(%v,%v)", real(v.c), imag(v.c))
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Card is one 80-byte-aligned record in a Header: a keyword, an
// optional typed value, and an optional trailing comment.
type Card struct {
	Keyword  string
	HasValue bool
	Value    Value
	Comment  string
}

// NewCard builds a value-bearing Card.
func NewCard(keyword string, value Value, comment string) Card {
	return Card{
		Keyword:  strings.ToUpper(keyword),
		HasValue: true,
		Value:    value,
		Comment:  comment,
	}
}

// NewCommentCard builds a free-form COMMENT/HISTORY/blank-keyword
// card; its text lives entirely in Comment.
func NewCommentCard(keyword, text string) Card {
	return Card{Keyword: strings.ToUpper(keyword), Comment: text}
}

// isFreeForm reports whether keyword carries no "= " value indicator
// and instead treats columns 9-80 as free-form text.
func isFreeForm(keyword string) bool {
	switch keyword {
	case "HISTORY", "COMMENT", "", "CONTINUE", "END":
		return true
	default:
		return false
	}
}

// verifyKeyword checks a keyword conforms to the FITS standard:
// only capital letters, digits, '-' or '_', trailing spaces allowed.
func verifyKeyword(keyword string) error {
	seenSpace := false
	for i, c := range keyword {
		switch {
		case (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_':
			if seenSpace {
				return fmt.Errorf("fits: keyword %q has embedded space at %d", keyword, i)
			}
		case c == ' ':
			seenSpace = true
		default:
			return fmt.Errorf("fits: keyword %q has illegal character %q at %d", keyword, c, i)
		}
	}
	return nil
}

// processQuotedString consumes a FITS-quoted string starting at s[0]
// == '\''. It returns the unescaped, right-trimmed content and the
// index in s immediately following the closing quote.
func processQuotedString(s string) (string, int, error) {
	if len(s) == 0 || s[0] != '\'' {
		return "", 0, fmt.Errorf("fits: string value does not start with a quote (%q)", s)
	}
	var buf bytes.Buffer
	i := 1
	for i < len(s) {
		if s[i] != '\'' {
			buf.WriteByte(s[i])
			i++
			continue
		}
		// s[i] == '\''
		if i+1 < len(s) && s[i+1] == '\'' {
			buf.WriteByte('\'')
			i += 2
			continue
		}
		// closing quote
		return strings.TrimRight(buf.String(), " "), i + 1, nil
	}
	return "", 0, fmt.Errorf("fits: string value ends prematurely (%q)", s)
}

// parseCardLine parses one 80-byte header record.
func parseCardLine(line []byte) (Card, error) {
	if len(line) != cardSize {
		return Card{}, fmt.Errorf("fits: invalid card length %d", len(line))
	}
	for _, b := range line {
		if b > 0x7e || b < 0x20 {
			return Card{}, &CardEncodingError{Detail: fmt.Sprintf("non-ASCII byte %#x", b)}
		}
	}

	keyword := strings.TrimRight(string(line[:8]), " ")

	if keyword == "END" {
		return Card{Keyword: "END"}, nil
	}

	hasValInd := len(line) >= 10 && string(line[8:10]) == "= "
	if !hasValInd || keyword == "HISTORY" || keyword == "COMMENT" || keyword == "" || keyword == "CONTINUE" {
		text := strings.TrimRight(string(line[8:]), " ")
		if keyword == "CONTINUE" {
			str, _, err := processQuotedString(strings.TrimLeft(text, " "))
			if err != nil {
				return Card{}, &CardStringError{Keyword: "CONTINUE", Detail: err.Error()}
			}
			return Card{Keyword: "CONTINUE", HasValue: true, Value: StringValue(str)}, nil
		}
		return Card{Keyword: keyword, Comment: text}, nil
	}

	rest := string(line[10:])
	trimmed := strings.TrimLeft(rest, " ")
	lead := len(rest) - len(trimmed)
	if trimmed == "" {
		// value indicator present but value undefined: legal, no error.
		return Card{Keyword: keyword}, nil
	}

	var value Value
	var consumed int

	switch trimmed[0] {
	case '\'':
		str, idx, err := processQuotedString(trimmed)
		if err != nil {
			return Card{}, &CardStringError{Keyword: keyword, Detail: err.Error()}
		}
		if len(str) > 69 {
			str = str[:70]
		}
		value = StringValue(str)
		consumed = idx

	case '(':
		end := strings.IndexByte(trimmed, ')')
		if end < 0 {
			return Card{}, &CardValueError{Keyword: keyword, Detail: "complex value missing closing ')'"}
		}
		var re, im float64
		_, err := fmt.Sscanf(trimmed[:end+1], "(%f,%f)", &re, &im)
		if err != nil {
			return Card{}, &CardValueError{Keyword: keyword, Detail: err.Error()}
		}
		value = ComplexValue(complex(re, im))
		consumed = end + 1

	case 'T', 'F':
		value = LogicalValue(trimmed[0] == 'T')
		consumed = 1

	default:
		tokEnd := strings.Index(trimmed, " /")
		tok := trimmed
		if tokEnd >= 0 {
			tok = trimmed[:tokEnd]
		}
		tok = strings.TrimSpace(tok)
		v0 := tok[0]
		if v0 != '+' && v0 != '-' && !(v0 >= '0' && v0 <= '9') {
			return Card{}, &CardValueError{Keyword: keyword, Detail: fmt.Sprintf("unrecognized value token %q", tok)}
		}
		if strings.ContainsAny(tok, ".DE") {
			dexp := strings.ContainsRune(tok, 'D')
			norm := strings.Replace(tok, "D", "E", 1)
			f, err := strconv.ParseFloat(norm, 64)
			if err != nil {
				return Card{}, &CardValueError{Keyword: keyword, Detail: err.Error()}
			}
			value = Value{Kind: KindFloat, f: f, dexp: dexp}
		} else {
			n, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return Card{}, &CardValueError{Keyword: keyword, Detail: err.Error()}
			}
			value = IntegerValue(n)
		}
		consumed = len(tok)
	}

	remainder := trimmed[consumed:]
	comment := ""
	if slash := strings.IndexByte(remainder, '/'); slash >= 0 {
		comment = strings.TrimSpace(remainder[slash+1:])
	}
	_ = lead

	return Card{Keyword: keyword, HasValue: true, Value: value, Comment: comment}, nil
}

// renderCard serializes a Card to one or more 80-byte records
// (CONTINUE records are emitted for string values too long to fit
// in a single record).
func renderCard(card Card) ([]byte, error) {
	var buf bytes.Buffer

	if card.Keyword == "END" {
		buf.WriteString(fmt.Sprintf("%-80s", "END"))
		return buf.Bytes(), nil
	}

	if isFreeForm(card.Keyword) && card.Keyword != "CONTINUE" {
		name := card.Keyword
		if name == "" {
			name = ""
		}
		text := card.Comment
		if len(text) == 0 {
			fmt.Fprintf(&buf, "%-8s%-72s", name, "")
			return buf.Bytes(), nil
		}
		for i := 0; i < len(text); i += 72 {
			end := i + 72
			if end > len(text) {
				end = len(text)
			}
			fmt.Fprintf(&buf, "%-8s%-72s", name, text[i:end])
		}
		return buf.Bytes(), nil
	}

	if err := verifyKeyword(card.Keyword); err != nil && len(card.Keyword) <= 8 {
		return nil, err
	}

	keyword := card.Keyword
	useHierarch := len(keyword) > 8
	if useHierarch {
		if strings.Contains(keyword, "=") {
			return nil, fmt.Errorf("fits: illegal keyword name (contains '='): %s", keyword)
		}
		key := keyword
		if !strings.HasPrefix(strings.ToUpper(key), "HIERARCH ") {
			key = "HIERARCH " + key
		}
		fmt.Fprintf(&buf, "%s= ", key)
	} else {
		fmt.Fprintf(&buf, "%-8s= ", keyword)
	}

	if !card.HasValue {
		if !useHierarch {
			buf.Bytes()[8] = ' '
		}
		appendComment(&buf, card.Comment, true)
		return padToLine(buf.Bytes()), nil
	}

	switch card.Value.Kind {
	case KindLogical:
		v := "F"
		if card.Value.Bool() {
			v = "T"
		}
		fmt.Fprintf(&buf, "%20s", v)

	case KindInteger:
		fmt.Fprintf(&buf, "%20d", card.Value.Int())

	case KindFloat:
		exp := byte('E')
		if card.Value.IsDouble() {
			exp = 'D'
		}
		s := strconv.FormatFloat(card.Value.Float(), 'E', 13, 64)
		s = strings.Replace(s, "E", string(exp), 1)
		fmt.Fprintf(&buf, "%20s", s)

	case KindComplex:
		fmt.Fprintf(&buf, "(%9f,%9f)", real(card.Value.Complex()), imag(card.Value.Complex()))

	case KindString:
		return renderStringCard(keyword, card, useHierarch)

	case KindNone:
		// value indicator present, value undefined.
	}

	appendCommentWithSeparator(&buf, card.Comment)
	return padToLine(buf.Bytes()), nil
}

// renderStringCard writes the value into a single record when its
// quoted form fits after the value indicator (up to 67 characters with
// an 8-character keyword), and otherwise chains the overflow into
// CONTINUE records.
func renderStringCard(keyword string, card Card, useHierarch bool) ([]byte, error) {
	var buf bytes.Buffer
	if useHierarch {
		key := keyword
		if !strings.HasPrefix(strings.ToUpper(key), "HIERARCH ") {
			key = "HIERARCH " + key
		}
		fmt.Fprintf(&buf, "%s= ", key)
	} else {
		fmt.Fprintf(&buf, "%-8s= ", keyword)
	}

	v := strings.ReplaceAll(card.Value.Str(), "'", "''")
	vstr := "''"
	if v != "" {
		vstr = fmt.Sprintf("'%-8s'", v)
	}
	remaining := cardSize - buf.Len()
	if len(vstr) < remaining {
		fmt.Fprintf(&buf, "%-20s", vstr)
		appendCommentWithSeparator(&buf, card.Comment)
		return padToLine(buf.Bytes()), nil
	}

	// CONTINUE overflow: truncate, mark '&', chain remaining chunks.
	sz := remaining - len("&''")
	if sz < 0 {
		sz = 0
	}
	head := v
	if sz < len(v) {
		head = v[:sz]
	}
	fmt.Fprintf(&buf, "%-20s", fmt.Sprintf("'%-8s'", head+"&"))
	if buf.Len()%cardSize != 0 {
		buf.Write(bytes.Repeat([]byte(" "), cardSize-(buf.Len()%cardSize)))
	}

	rest := v[len(head):]
	const contBody = cardSize - len("CONTINUE") - len("  ") - len("&''")
	for i := 0; i < len(rest); i += contBody {
		end := i + contBody
		amp := "&"
		if end >= len(rest) {
			end = len(rest)
			amp = ""
		}
		chunk := rest[i:end]
		fmt.Fprintf(&buf, "%-8s  %-20s", "CONTINUE", fmt.Sprintf("'%-8s'", chunk+amp))
		if buf.Len()%cardSize != 0 {
			buf.Write(bytes.Repeat([]byte(" "), cardSize-(buf.Len()%cardSize)))
		}
	}

	if card.Comment != "" {
		cline, err := renderCard(Card{Keyword: "COMMENT", Comment: card.Comment})
		if err != nil {
			return nil, err
		}
		buf.Write(cline)
	}

	return buf.Bytes(), nil
}

func appendComment(buf *bytes.Buffer, comment string, bare bool) {
	if comment == "" {
		return
	}
	prefix := " / "
	if bare {
		prefix = comment
		fmt.Fprintf(buf, "%s", prefix)
		return
	}
	fmt.Fprintf(buf, "%s%s", prefix, comment)
}

func appendCommentWithSeparator(buf *bytes.Buffer, comment string) {
	if comment == "" {
		return
	}
	used := buf.Len() % cardSize
	remaining := cardSize - used
	full := " / " + comment
	if len(full) <= remaining {
		fmt.Fprintf(buf, "%s", full)
		return
	}
	if remaining > len(full) {
		remaining = len(full)
	}
	fmt.Fprintf(buf, "%s", full[:remaining])
}

func padToLine(b []byte) []byte {
	n := len(b)
	pad := (cardSize - (n % cardSize)) % cardSize
	if pad == 0 {
		return b
	}
	return append(b, bytes.Repeat([]byte(" "), pad)...)
}
