package resources

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/clinicplace/console/internal/domain/marketplace"
)

// FormErrors collects per-field parse errors of a submitted form.
type FormErrors map[string]string

func (e FormErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Merge adds other's messages for fields that have none yet.
func (e FormErrors) Merge(other map[string]string) FormErrors {
	for k, v := range other {
		e.add(k, v)
	}
	return e
}

func (e FormErrors) Empty() bool {
	return len(e) == 0
}

func lower(s string) string {
	return strings.ToLower(s)
}

func formString(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

func formInt64(form url.Values, key string, errs FormErrors) int64 {
	raw := formString(form, key)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errs.add(key, key+" must be a whole number")
		return 0
	}
	return n
}

func formInt(form url.Values, key string, errs FormErrors) int {
	return int(formInt64(form, key, errs))
}

// formOptionalInt returns nil for a blank value, which the API reads as
// "no limit".
func formOptionalInt(form url.Values, key string, errs FormErrors) *int {
	raw := formString(form, key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.add(key, key+" must be a whole number")
		return nil
	}
	return &n
}

func formAmount(form url.Values, key string, errs FormErrors) marketplace.Amount {
	raw := formString(form, key)
	if raw == "" {
		return 0
	}
	a, err := marketplace.ParseAmount(raw)
	if err != nil {
		errs.add(key, key+" must be a number")
		return 0
	}
	return a
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// LimitText renders an optional limit, with "-" for no limit.
func LimitText(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
