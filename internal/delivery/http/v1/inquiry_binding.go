package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go-partnership-inquiry/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var errInvalidJSON = errors.New("inquiry body is not valid JSON")

// bindInquiry reads form bodies with form binding and anything else as JSON.
// Missing fields stay empty; an empty body or a JSON value that is not an
// object yields an empty request.
func bindInquiry(c *gin.Context) (*domain.InquiryRequest, error) {
	req := &domain.InquiryRequest{}

	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := c.ShouldBindWith(req, binding.Form); err != nil {
			return nil, fmt.Errorf("bind inquiry form: %w", err)
		}
		return req, nil
	}

	raw, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("read inquiry body: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return req, nil
	}
	if !json.Valid(raw) {
		return nil, errInvalidJSON
	}
	if raw[0] != '{' {
		return req, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode inquiry json: %w", err)
	}

	targets := map[string]*string{
		"company": &req.Company,
		"name":    &req.Name,
		"email":   &req.Email,
		"message": &req.Message,
		"website": &req.Website,
		"source":  &req.Source,
		"ua":      &req.UA,
	}
	for key, dst := range targets {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if *dst, err = coerceField(value); err != nil {
			return nil, fmt.Errorf("decode inquiry field %q: %w", key, err)
		}
	}
	return req, nil
}

// coerceField turns any JSON value into the text a form field would carry.
// Values that count as blank (null, false, 0) become "" so they fail the
// required and honeypot checks the same way an absent field does. Objects and
// arrays keep their compact JSON text.
func coerceField(value json.RawMessage) (string, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 {
		return "", errInvalidJSON
	}

	switch value[0] {
	case '"':
		var s string
		err := json.Unmarshal(value, &s)
		return s, err
	case 'n', 'f':
		return "", nil
	case 't':
		return "true", nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, value); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		f, err := strconv.ParseFloat(string(value), 64)
		if err != nil {
			// out of float64 range, keep the literal
			return string(value), nil
		}
		if f == 0 {
			return "", nil
		}
		return formatNumber(f), nil
	}
}

// formatNumber prints f the shortest way that round-trips, without an
// exponent for everyday magnitudes.
func formatNumber(f float64) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
