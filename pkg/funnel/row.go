package funnel

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/funnelgraph/funnelgraph/pkg/errors"
)

// Row is one funnel segment's data: a label, a numeric value, and optional
// colors. Value may carry a pre-formatted display string; when Formatted is
// empty the value is auto-formatted with thousands separators.
type Row struct {
	Label      string
	Value      float64
	Formatted  string // pre-formatted display value, optional
	Color      string // block fill, #rgb or #rrggbb; assigned from the palette if absent
	LabelColor string // per-row label color override, optional
}

// FormattedValue returns the display string for the row's value.
func (r Row) FormattedValue() string {
	if r.Formatted != "" {
		return r.Formatted
	}
	return formatNumber(r.Value)
}

// UnmarshalJSON decodes the array row form:
//
//	["label", value, "#color"?, "#labelColor"?]
//	["label", [value, "formatted"], "#color"?, "#labelColor"?]
//
// This mirrors the on-disk format accepted by the CLI.
func (r *Row) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "row must be an array")
	}
	if len(fields) < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "row needs at least a label and a value")
	}

	if err := json.Unmarshal(fields[0], &r.Label); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "row label must be a string")
	}
	if err := unmarshalValue(fields[1], r); err != nil {
		return err
	}
	if len(fields) > 2 {
		if err := json.Unmarshal(fields[2], &r.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "row color must be a string")
		}
	}
	if len(fields) > 3 {
		if err := json.Unmarshal(fields[3], &r.LabelColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "row label color must be a string")
		}
	}
	return nil
}

// unmarshalValue accepts either a bare number or a [value, formatted] pair.
func unmarshalValue(data json.RawMessage, r *Row) error {
	if err := json.Unmarshal(data, &r.Value); err == nil {
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
		return errors.New(errors.ErrCodeInvalidInput, "row value must be a number or a [value, formatted] pair")
	}
	if err := json.Unmarshal(pair[0], &r.Value); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "row value must be numeric")
	}
	if err := json.Unmarshal(pair[1], &r.Formatted); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "formatted value must be a string")
	}
	return nil
}

// ValidateRows checks the basic shape of the input data before a draw pass.
// It rejects empty lists and negative values. A zero value is allowed and
// produces a zero-height block in dynamic-area mode.
func ValidateRows(rows []Row) error {
	if len(rows) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no rows to draw")
	}
	for i, r := range rows {
		if err := errors.ValidateLabelText(r.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d", i)
		}
		if r.Value < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "row %d (%s): negative value %v", i, r.Label, r.Value)
		}
	}
	return nil
}

// formatNumber renders v with comma thousands separators, e.g. 12345 -> "12,345".
// Fractional values keep up to two decimal places.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)

	var frac string
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		frac = s[dot:]
		if len(frac) > 3 {
			frac = frac[:3]
		}
		s = s[:dot]
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
