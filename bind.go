package input

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/pchchv/form"
)

var decoder = form.NewDecoder()

// BindQuery decodes the cleaned query namespace into v, a pointer to struct.
// Fields are matched by their `form` tag.
//
// Nested parameters map to nested struct fields ("user[name]" binds to the
// field tagged "name" inside the field tagged "user"), lists map to slices.
func (m *Manager) BindQuery(v any) error {
	return m.bind(Query, v)
}

// BindPost decodes the cleaned body namespace into v. See BindQuery.
func (m *Manager) BindPost(v any) error {
	return m.bind(Body, v)
}

func (m *Manager) bind(ns Namespace, v any) error {
	values := url.Values{}
	flatten(values, "", m.params[ns])

	if err := decoder.Decode(v, values); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFailedToBind, ns, err)
	}
	return nil
}

// flatten writes p into values using the decoder's key syntax: "." between
// struct levels and "[i]" for list elements.
func flatten(values url.Values, prefix string, p Params) {
	for name, value := range p {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		flattenValue(values, key, value)
	}
}

func flattenValue(values url.Values, key string, value any) {
	switch t := value.(type) {
	case nil, *multipart.FileHeader:
	case string:
		values.Add(key, t)
	case Params:
		flatten(values, key, t)
	case []any:
		for i, item := range t {
			flattenValue(values, key+"["+strconv.Itoa(i)+"]", item)
		}
	default:
		values.Add(key, fmt.Sprint(t))
	}
}
