package textutil

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	sniffSampleSize              = 4096
	nonPrintableThresholdPercent = 30
)

// ErrBinaryInput is returned by DecodeText for content that does not look
// like text.
var ErrBinaryInput = errors.New("input looks like binary data")

type byteOrder int

const (
	bomNone byteOrder = iota
	bomUTF8
	bomUTF16LE
	bomUTF16BE
)

// DecodeText converts text read from a pipe or an editor's file into a
// UTF-8 string. A UTF-8 BOM is stripped and BOM-marked UTF-16 is decoded.
func DecodeText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}
	if !LooksLikeText(content) {
		return "", ErrBinaryInput
	}
	switch detectBOM(content) {
	case bomUTF8:
		return string(content[3:]), nil
	case bomUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case bomUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content), nil
	}
}

// LooksLikeText sniffs the head of content for NUL bytes and control noise.
func LooksLikeText(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	sample := content
	if len(sample) > sniffSampleSize {
		sample = sample[:sniffSampleSize]
	}
	if detectBOM(sample) != bomNone {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	printable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		}
	}
	if printable == 0 {
		return false
	}
	return (len(sample)-printable)*100/len(sample) < nonPrintableThresholdPercent
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r':
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	default:
		return b >= 0x80
	}
}

func detectBOM(sample []byte) byteOrder {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return bomUTF8
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return bomUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return bomUTF16BE
		}
	}
	return bomNone
}

func decodeUTF16(content []byte, endian unicode.Endianness) (string, error) {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
