package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

// maxBodyBytes caps request bodies; a draft is a few hundred bytes.
const maxBodyBytes = 64 << 10

var errBadRequest = errors.New("malformed request")

// RequestBodyParser reads a JSON object or a form-encoded body once and
// exposes its fields as strings.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

// NewRequestBodyParser reads the body of r, up to maxBodyBytes.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if p.err == nil && len(p.body) > maxBodyBytes {
		p.err = fmt.Errorf("%w: body exceeds %d bytes", errBadRequest, maxBodyBytes)
	}
	return p
}

// Parse decodes the body as JSON when it looks like a JSON object and as
// form data otherwise.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true
	if p.err != nil {
		return p.err
	}

	body := bytes.TrimSpace(p.body)
	if len(body) == 0 {
		p.formData = url.Values{}
		return nil
	}
	if body[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&p.jsonData); err != nil {
			p.err = fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return p.err
	}
	if p.formData, p.err = url.ParseQuery(string(body)); p.err != nil {
		p.err = fmt.Errorf("%w: %v", errBadRequest, p.err)
	}
	return p.err
}

// Get returns the sanitized value of key, or "".
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		return sanitizeInput(stringValue(p.jsonData[key]))
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		// 1e3 and 1.5E1 are valid JSON numbers; hand on plain decimal text.
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return d.String()
		}
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseDraft builds a validated draft from the parsed body. The amount may
// be a JSON number or a string; a missing date means today.
func ParseDraft(p *RequestBodyParser) (core.Draft, error) {
	if err := p.Parse(); err != nil {
		return core.Draft{}, err
	}

	amount, err := core.ParseAmount(p.Get("amount"))
	if err != nil {
		return core.Draft{}, err
	}
	typ, err := core.ParseTxType(p.Get("type"))
	if err != nil {
		return core.Draft{}, err
	}
	date := core.Today()
	if v := p.Get("date"); v != "" {
		if date, err = core.ParseDate(v); err != nil {
			return core.Draft{}, err
		}
	}

	d := core.Draft{
		Description: p.Get("description"),
		Amount:      amount,
		Type:        typ,
		Category:    p.Get("category"),
		Date:        date,
	}
	return d, d.Validate()
}

// parseFilter reads the filter query parameter; absent means all.
func parseFilter(query url.Values) (core.Filter, error) {
	return core.ParseFilter(query.Get("filter"))
}

// parseID reads the {id} path segment.
func parseID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid transaction id %q", errBadRequest, raw)
	}
	return id, nil
}

// confirmed reports whether the request carries confirm=true.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
