package ingest

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// decodeText decodes a text body to UTF-8. The charset hint from the
// transport header is tried first, then plain UTF-8, then chardet
// detection across candidate encodings. As a last resort the bytes are
// passed through unchanged, matching the permissive behavior web
// content requires.
func decodeText(data []byte, hint string) string {
	if len(data) == 0 {
		return ""
	}

	if hint != "" {
		if enc := lookupEncoding(hint); enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(decoded)
			}
		}
	}

	if utf8.Valid(data) {
		return string(data)
	}

	if text, ok := detectAndDecode(data); ok {
		return text
	}
	return string(data)
}

// detectAndDecode runs charset detection and picks the candidate whose
// decoded text looks most coherent.
func detectAndDecode(data []byte) (string, bool) {
	results, err := chardet.NewTextDetector().DetectAll(data)
	if err != nil || len(results) == 0 {
		return "", false
	}

	best := ""
	bestScore := -1 << 30
	for _, r := range results {
		enc := lookupEncoding(r.Charset)
		if enc == nil {
			continue
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		text := string(decoded)
		if score := scoreDecoded(text, r.Confidence); score > bestScore {
			bestScore = score
			best = text
		}
	}
	return best, best != ""
}

// scoreDecoded rates decoded text: replacement and control runes signal
// a wrong encoding, letters and digits a plausible one.
func scoreDecoded(text string, confidence int) int {
	score := confidence
	for _, r := range text {
		switch {
		case r == utf8.RuneError:
			score -= 10
		case r < 0x20 && r != '\n' && r != '\r' && r != '\t':
			score -= 5
		default:
			score++
		}
	}
	return score
}

// lookupEncoding maps charset names, as they appear in Content-Type
// headers and chardet results, to Go encoding implementations.
func lookupEncoding(charset string) encoding.Encoding {
	name := strings.ToLower(charset)
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	switch name {
	case "utf8", "utf8bom", "ascii", "usascii":
		return unicode.UTF8
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "iso88591", "latin1":
		return charmap.ISO8859_1
	case "iso88592":
		return charmap.ISO8859_2
	case "iso88599":
		return charmap.ISO8859_9
	case "iso885915":
		return charmap.ISO8859_15
	case "windows1250", "cp1250":
		return charmap.Windows1250
	case "windows1251", "cp1251":
		return charmap.Windows1251
	case "windows1252", "cp1252":
		return charmap.Windows1252
	case "koi8r":
		return charmap.KOI8R
	case "shiftjis", "sjis", "cp932", "windows31j":
		return japanese.ShiftJIS
	case "eucjp":
		return japanese.EUCJP
	case "euckr", "cp949":
		return korean.EUCKR
	case "gb2312", "gbk", "cp936", "gb18030":
		return simplifiedchinese.GBK
	case "big5", "cp950":
		return traditionalchinese.Big5
	}
	return nil
}
