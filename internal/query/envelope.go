package query

import (
	"encoding/json"
	"fmt"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

// ParseEnvelope unwraps the nested success/data envelope the remote service
// produces into a uniform payload. Several envelope generations coexist in
// the wild; the unwrap precedence below matches what each known endpoint
// returns and must not be reordered:
//
//  1. top-level ret/iRet flag indicating failure wins, with sMsg
//  2. a jData object: inner data.code, or jData's own iRet/sMsg
//  3. anything else decodable passes through unchanged
//
// A body that fails to decode is reported as an error, but the raw text is
// kept on the payload so callers can still display it.
func ParseEnvelope(body string) domain.EnvelopePayload {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return domain.PayloadErr("response decode failed", body)
	}

	if flagFailed(decoded["ret"]) || flagFailed(decoded["iRet"]) {
		return domain.PayloadErr(
			fmt.Sprintf("request failed: %s", messageField(decoded, "sMsg")), body)
	}

	jData, ok := decoded["jData"].(map[string]any)
	if !ok {
		return domain.PayloadOK(decoded, body)
	}

	if inner, ok := jData["data"]; ok {
		if innerMap, ok := inner.(map[string]any); ok {
			if code, present := innerMap["code"]; present {
				if flagFailed(code) {
					msg := messageField(innerMap, "msg", "message")
					return domain.PayloadErr(fmt.Sprintf("data fetch failed: %s", msg), body)
				}
				return domain.PayloadOK(valueOr(innerMap, "data", map[string]any{}), body)
			}
		}
		return domain.PayloadOK(inner, body)
	}

	if flagFailed(jData["iRet"]) {
		return domain.PayloadErr(
			fmt.Sprintf("data fetch failed: %s", messageField(jData, "sMsg")), body)
	}
	return domain.PayloadOK(valueOr(jData, "data", map[string]any{}), body)
}

// flagFailed reports whether a success flag is present and non-zero. The API
// encodes flags variously as numbers and as strings across endpoints; a
// boolean false counts as zero, i.e. success.
func flagFailed(v any) bool {
	switch f := v.(type) {
	case nil:
		return false
	case float64:
		return f != 0
	case string:
		return f != "0" && f != ""
	}
	return false
}

func messageField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return "unknown error"
}

func valueOr(m map[string]any, key string, fallback any) any {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
