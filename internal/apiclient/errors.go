package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind classifies a failed backend call.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindServer       ErrorKind = "server"
)

// Error is the normalized form of every failed backend call.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// KindForStatus maps an HTTP status onto the error taxonomy.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 400 && status < 500:
		return KindConflict
	default:
		return KindServer
	}
}

// Normalize turns an error response into a single human-readable message,
// whatever shape the body has.
func Normalize(status int, body []byte) *Error {
	apiErr := &Error{Kind: KindForStatus(status), Status: status}

	var payload any
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		apiErr.Message, apiErr.Fields = messageFrom(payload)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Message == "" {
		apiErr.Message = "request failed"
	}
	return apiErr
}

func messageFrom(payload any) (string, map[string]string) {
	switch v := payload.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case []any:
		return fieldMessages(v)
	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg != "" {
			return msg, nil
		}
		if detail, ok := v["detail"]; ok {
			if msg, fields := messageFrom(detail); msg != "" {
				return msg, fields
			}
		}
		if nested, ok := v["error"]; ok {
			if msg, fields := messageFrom(nested); msg != "" {
				return msg, fields
			}
		}
		return synthesize(v), nil
	}
	return "", nil
}

// fieldMessages reads the [{"loc": [...], "msg": "..."}] validation shape.
func fieldMessages(items []any) (string, map[string]string) {
	fields := map[string]string{}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
			continue
		}
		msg, _ := entry["msg"].(string)
		if msg == "" {
			msg, _ = entry["message"].(string)
		}
		if msg == "" {
			continue
		}
		field := fieldName(entry["loc"])
		if field == "" {
			parts = append(parts, msg)
			continue
		}
		fields[field] = msg
		parts = append(parts, field+": "+msg)
	}
	if len(fields) == 0 {
		fields = nil
	}
	return strings.Join(parts, "; "), fields
}

func fieldName(loc any) string {
	path, ok := loc.([]any)
	if !ok || len(path) == 0 {
		return ""
	}
	return fmt.Sprint(path[len(path)-1])
}

func synthesize(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+valueString(obj[k]))
	}
	return strings.Join(parts, "; ")
}

func valueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}
