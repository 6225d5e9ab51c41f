// Package encoding turns imported files of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Charsets a spreadsheet export may arrive in besides UTF-8.
var decoders = map[string]xenc.Encoding{
	"windows-1252": charmap.Windows1252,
	"ISO-8859-1":   charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

const fallbackCharset = "windows-1252"

// Reader yields the input decoded to UTF-8.
// Charset names the encoding the input was detected as.
type Reader struct {
	io.Reader
	Charset string
}

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. valid UTF-8 is returned as-is
//  3. heuristic detection via chardet
//  4. Windows-1252
func NewUTF8Reader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return &Reader{Reader: br, Charset: "UTF-8"}, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, "UTF-16LE", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, "UTF-16BE", unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if validUTF8Prefix(buf) {
		return &Reader{Reader: br, Charset: "UTF-8"}, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if result.Charset == "UTF-8" {
			return &Reader{Reader: br, Charset: "UTF-8"}, nil
		}

		if enc, ok := decoders[result.Charset]; ok {
			return decode(br, result.Charset, enc), nil
		}
	}

	return decode(br, fallbackCharset, charmap.Windows1252), nil
}

func decode(r io.Reader, charset string, enc xenc.Encoding) *Reader {
	return &Reader{Reader: transform.NewReader(r, enc.NewDecoder()), Charset: charset}
}

// validUTF8Prefix is utf8.Valid that tolerates a rune cut off by the peek window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for cut := 1; cut < utf8.UTFMax && cut <= len(buf); cut++ {
		tail := buf[len(buf)-cut:]
		if utf8.RuneStart(tail[0]) && !utf8.FullRune(tail) {
			return utf8.Valid(buf[:len(buf)-cut])
		}
	}

	return false
}
