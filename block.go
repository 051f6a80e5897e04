// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

// blockSize is the size, in bytes, of a FITS logical block. Every
// header section and every data section is padded out to a multiple
// of blockSize.
const blockSize = 2880

// cardSize is the size, in bytes, of a single FITS card record.
const cardSize = 80

// cardsPerBlock is the number of 80-byte card records held by a
// single 2880-byte header block.
const cardsPerBlock = blockSize / cardSize

// padBytes returns the number of padding bytes needed to align sz to
// the next blockSize boundary.
func padBytes(sz int) int {
	return (blockSize - (sz % blockSize)) % blockSize
}

// alignBytes returns sz rounded up to the next blockSize boundary.
func alignBytes(sz int) int {
	return sz + padBytes(sz)
}

// padCards returns the number of blank card records needed so that n
// cards (the END card included) fill a whole number of header blocks.
func padCards(n int) int {
	return (cardsPerBlock - (n % cardsPerBlock)) % cardsPerBlock
}
