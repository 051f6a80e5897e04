// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header is an ordered card list terminated by a mandatory END card,
// plus a keyword->first-index lookup map. Keywords are stored
// uppercase and looked up case-insensitively.
type Header struct {
	htype HDUType
	cards []Card
	index map[string]int
}

// newHeader creates a Header of the given kind with only the
// mandatory END card.
func newHeader(htype HDUType) *Header {
	h := &Header{htype: htype, cards: []Card{{Keyword: "END"}}}
	h.rebuildIndex()
	return h
}

// Type returns the HDU kind this header describes.
func (h *Header) Type() HDUType { return h.htype }

// Len returns the number of cards, including END.
func (h *Header) Len() int { return len(h.cards) }

// Card returns the i-th card. Card panics if i is out of range.
func (h *Header) Card(i int) *Card { return &h.cards[i] }

// Get returns the first card with the given keyword (case-insensitive).
func (h *Header) Get(keyword string) (*Card, bool) {
	i, ok := h.index[strings.ToUpper(keyword)]
	if !ok {
		return nil, false
	}
	return &h.cards[i], true
}

// Index returns the index of the first card with the given keyword,
// or -1 if absent.
func (h *Header) Index(keyword string) int {
	i, ok := h.index[strings.ToUpper(keyword)]
	if !ok {
		return -1
	}
	return i
}

// Keys returns all non-structural keywords in card order, skipping
// END, COMMENT, HISTORY and blank cards.
func (h *Header) Keys() []string {
	keys := make([]string, 0, len(h.cards))
	for _, c := range h.cards {
		switch c.Keyword {
		case "END", "COMMENT", "HISTORY", "", "CONTINUE":
			continue
		default:
			keys = append(keys, c.Keyword)
		}
	}
	return keys
}

// rebuildIndex recomputes the keyword->index map. Called after any
// positional mutation; cost is O(cards), which is acceptable since
// headers hold at most a few hundred cards.
func (h *Header) rebuildIndex() {
	h.index = make(map[string]int, len(h.cards))
	for i, c := range h.cards {
		if _, dup := h.index[c.Keyword]; dup {
			continue // first occurrence wins, per spec
		}
		h.index[c.Keyword] = i
	}
}

func (h *Header) endIndex() int {
	for i, c := range h.cards {
		if c.Keyword == "END" {
			return i
		}
	}
	return len(h.cards)
}

// Append inserts card immediately before the END card.
func (h *Header) Append(card Card) error {
	card.Keyword = strings.ToUpper(card.Keyword)
	pos := h.endIndex()
	h.cards = append(h.cards[:pos], append([]Card{card}, h.cards[pos:]...)...)
	h.rebuildIndex()
	return nil
}

// InsertBefore inserts card immediately before the first card named
// anchor. If anchor is absent, the card is inserted before END.
func (h *Header) InsertBefore(anchor string, card Card) error {
	card.Keyword = strings.ToUpper(card.Keyword)
	pos := h.Index(anchor)
	if pos < 0 {
		pos = h.endIndex()
	}
	h.cards = append(h.cards[:pos], append([]Card{card}, h.cards[pos:]...)...)
	h.rebuildIndex()
	return nil
}

// Prepend inserts cards at the very front of the header (used by the
// HDU assembler when finalizing mandatory cards).
func (h *Header) Prepend(cards ...Card) {
	h.cards = append(append([]Card{}, cards...), h.cards...)
	h.rebuildIndex()
}

// Remove deletes the first card named keyword. Mandatory keywords
// cannot be removed.
func (h *Header) Remove(keyword string) error {
	keyword = strings.ToUpper(keyword)
	if isMandatoryKeyword(keyword) {
		return &MandatoryKeywordError{Keyword: keyword, Op: "delete"}
	}
	i := h.Index(keyword)
	if i < 0 {
		return fmt.Errorf("fits: keyword %q not found", keyword)
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	h.rebuildIndex()
	return nil
}

// Rename renames the first card named oldKey to newKey. Mandatory
// keywords cannot be renamed.
func (h *Header) Rename(oldKey, newKey string) error {
	oldKey = strings.ToUpper(oldKey)
	newKey = strings.ToUpper(newKey)
	if isMandatoryKeyword(oldKey) {
		return &MandatoryKeywordError{Keyword: oldKey, Op: "rename"}
	}
	i := h.Index(oldKey)
	if i < 0 {
		return fmt.Errorf("fits: keyword %q not found", oldKey)
	}
	h.cards[i].Keyword = newKey
	h.rebuildIndex()
	return nil
}

// Set updates the value/comment of an existing card, or appends a
// new one if keyword is absent. Mandatory-card values may be edited
// (but not deleted/renamed) via Set.
func (h *Header) Set(keyword string, value Value, comment string) error {
	keyword = strings.ToUpper(keyword)
	if i, ok := h.index[keyword]; ok {
		h.cards[i].Value = value
		h.cards[i].HasValue = true
		h.cards[i].Comment = comment
		return nil
	}
	return h.Append(NewCard(keyword, value, comment))
}

// isMandatoryKeyword reports whether keyword is one of the fixed
// mandatory cards of §4.4, which may not be deleted or renamed.
func isMandatoryKeyword(keyword string) bool {
	switch keyword {
	case "SIMPLE", "XTENSION", "BITPIX", "NAXIS", "EXTEND", "END", "PCOUNT", "GCOUNT", "TFIELDS":
		return true
	}
	for _, prefix := range []string{"NAXIS", "TTYPE", "TFORM", "TBCOL"} {
		if strings.HasPrefix(keyword, prefix) {
			suffix := keyword[len(prefix):]
			if suffix == "" {
				continue
			}
			if _, err := strconv.Atoi(suffix); err == nil {
				return true
			}
		}
	}
	return false
}

// Serialize renders the header to a sequence of 2880-byte blocks.
func (h *Header) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	for i := range h.cards {
		line, err := renderCard(h.cards[i])
		if err != nil {
			return nil, fmt.Errorf("fits: card %d (%s): %w", i, h.cards[i].Keyword, err)
		}
		buf.Write(line)
	}
	pad := padBytes(buf.Len())
	if pad > 0 {
		buf.Write(bytes.Repeat([]byte(" "), pad))
	}
	return buf.Bytes(), nil
}

// ParseHeaderBlocks reads 2880-byte header blocks from r until a
// card with keyword END is seen. It returns the parsed header and
// the total number of bytes consumed (a multiple of blockSize).
func ParseHeaderBlocks(r io.Reader, htype HDUType) (*Header, int, error) {
	h := &Header{htype: htype}
	buf := make([]byte, blockSize)
	total := 0
	const maxBlocks = 512 // guards against a runaway scan on a corrupt file
	for block := 0; block < maxBlocks; block++ {
		n, err := io.ReadFull(r, buf)
		if err != nil {
			return nil, total, err
		}
		total += n

		for i := 0; i < cardsPerBlock; i++ {
			line := buf[i*cardSize : (i+1)*cardSize]
			card, err := parseCardLine(line)
			if err != nil {
				return nil, total, err
			}
			if card.Keyword == "CONTINUE" {
				if len(h.cards) == 0 || h.cards[len(h.cards)-1].Value.Kind != KindString {
					return nil, total, &CardStringError{Detail: "CONTINUE with no preceding string card"}
				}
				last := &h.cards[len(h.cards)-1]
				prior := last.Value.Str()
				if len(prior) > 0 && prior[len(prior)-1] == '&' {
					prior = prior[:len(prior)-1]
				}
				last.Value = StringValue(prior + card.Value.Str())
				continue
			}
			h.cards = append(h.cards, card)
			if card.Keyword == "END" {
				h.rebuildIndex()
				return h, total, nil
			}
		}
	}
	return nil, total, &HeaderUnterminatedError{}
}
