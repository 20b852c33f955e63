// Package encoding converts typed request parameters into the wire form the
// Imgur API expects: booleans as "true"/"false", integers in decimal, id lists
// comma joined and nested resources reduced to their id.
package encoding

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/google/go-querystring/query"
)

// Identifier is anything with an upstream id.
type Identifier interface {
	ID() string
}

// IDList is a list of ids that encodes as one comma separated value.
type IDList []string

// IDs reduces resources to an IDList, skipping nil entries.
func IDs[T Identifier](items ...T) IDList {
	list := make(IDList, 0, len(items))
	for _, item := range items {
		if isNil(item) {
			continue
		}

		list = append(list, item.ID())
	}

	return list
}

// EncodeValues implements query.Encoder.
func (l IDList) EncodeValues(key string, values *url.Values) error {
	if len(l) == 0 {
		return nil
	}

	values.Set(key, strings.Join(l, ","))

	return nil
}

// Nested is a single nested resource encoded by its id.
type Nested struct {
	Value Identifier
}

// EncodeValues implements query.Encoder.
func (n Nested) EncodeValues(key string, values *url.Values) error {
	if isNil(n.Value) {
		return nil
	}

	if id := n.Value.ID(); id != "" {
		values.Set(key, id)
	}

	return nil
}

// Values encodes params, which may be nil, url.Values or a struct tagged
// for go-querystring. Empty values are removed.
func Values(params interface{}) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return clean(p), nil
	case map[string]string:
		values := url.Values{}
		for key, value := range p {
			values.Set(key, value)
		}

		return clean(values), nil
	}

	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("encoding parameters: %w", err)
	}

	return clean(values), nil
}

// Split moves the comma separated value of field into repeated entries of a
// second set, which the transport sends as multipart fields.
func Split(values url.Values, field string) (url.Values, url.Values) {
	rest := url.Values{}
	split := url.Values{}

	for key, vals := range values {
		if key != field {
			rest[key] = append([]string(nil), vals...)

			continue
		}

		for _, val := range vals {
			for _, part := range strings.Split(val, ",") {
				if part = strings.TrimSpace(part); part != "" {
					split.Add(field, part)
				}
			}
		}
	}

	return rest, split
}

// Flatten reduces values to a single string per key, as sent in JSON bodies.
func Flatten(values url.Values) map[string]string {
	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = values.Get(key)
	}

	return flat
}

func clean(values url.Values) url.Values {
	out := url.Values{}

	for key, vals := range values {
		for _, val := range vals {
			if val != "" {
				out.Add(key, val)
			}
		}
	}

	return out
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
