package api

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

type MediaType string

const (
	MediaJSON MediaType = "application/json"
	MediaForm MediaType = "application/x-www-form-urlencoded"
)

// Descriptor declares one HTTP request. Resource clients fill it in and
// Transport executes it.
type Descriptor struct {
	// Operation names the endpoint for logs and metrics, e.g. "readMovie".
	Operation string
	Method    string
	// Path is a template such as /api/v1/movies/{id}.
	Path       string
	PathParams map[string]string
	// Query values that are nil (or nil pointers) are not sent.
	Query map[string]any
	// Body is JSON-encoded, or must be url.Values when MediaType is MediaForm.
	Body      any
	MediaType MediaType
	// Errors maps non-2xx statuses to labels surfaced in *Error.
	Errors map[int]string
}

var validationErrorLabels = map[int]string{422: "Validation Error"}

// escapePathParam percent-encodes everything outside the unreserved set,
// spaces included, so a value can never add path segments.
func escapePathParam(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

func (d Descriptor) expandPath() (string, error) {
	p := d.Path
	for name, value := range d.PathParams {
		p = strings.ReplaceAll(p, "{"+name+"}", escapePathParam(value))
	}
	if i := strings.IndexByte(p, '{'); i >= 0 {
		return "", fmt.Errorf("unresolved path parameter in %q", p)
	}
	return p, nil
}

func (d Descriptor) encodeQuery() string {
	if len(d.Query) == 0 {
		return ""
	}
	v := url.Values{}
	for name, value := range d.Query {
		s, ok := queryValue(value)
		if !ok {
			continue
		}
		v.Set(name, s)
	}
	return v.Encode()
}

func queryValue(value any) (string, bool) {
	switch x := value.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case *int:
		if x == nil {
			return "", false
		}
		return fmt.Sprint(*x), true
	case *bool:
		if x == nil {
			return "", false
		}
		return fmt.Sprint(*x), true
	default:
		return fmt.Sprint(x), true
	}
}

// buildURL joins base and the expanded path and query.
func (d Descriptor) buildURL(base string) (string, error) {
	p, err := d.expandPath()
	if err != nil {
		return "", err
	}
	u := strings.TrimRight(base, "/") + p
	if q := d.encodeQuery(); q != "" {
		u += "?" + q
	}
	return u, nil
}

func (d Descriptor) encodeBody() (io.Reader, string, error) {
	if d.Body == nil {
		return nil, "", nil
	}
	if d.MediaType == MediaForm {
		form, ok := d.Body.(url.Values)
		if !ok {
			return nil, "", fmt.Errorf("form body must be url.Values, got %T", d.Body)
		}
		return strings.NewReader(form.Encode()), string(MediaForm), nil
	}
	b, err := json.Marshal(d.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(b), string(MediaJSON), nil
}
