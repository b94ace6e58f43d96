package parser

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	apperrors "linkfeed-aggregator/core/errors"
)

// decodeEncoded walks the encoded path: strip whitespace, base64, then UTF-8 or GBK text.
// Any failure is returned as a *FormatError naming the stage that failed.
func decodeEncoded(body []byte) (string, error) {
	compact := strings.Join(strings.Fields(string(body)), "")

	raw, err := decodeBase64(compact)
	if err != nil {
		return "", &apperrors.FormatError{Stage: "base64", Err: err}
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	text, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &apperrors.FormatError{Stage: "text", Err: err}
	}

	return string(text), nil
}

// decodeBase64 accepts the standard alphabet with or without trailing padding
func decodeBase64(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return raw, nil
	}

	if len(s)%4 == 0 {
		return nil, err
	}

	raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if rawErr != nil {
		return nil, err
	}

	return raw, nil
}
