package declient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_encode_preserves_insertion_order(t *testing.T) {
	t.Parallel()

	var q QueryParams
	q = q.Add("z", "last")
	q = q.Add("a", 1)
	q = q.Add("m", true)

	assert.Equal(t, "z=last&a=1&m=true", q.Encode())
}

func TestQueryParams_set_replaces_in_place(t *testing.T) {
	t.Parallel()

	q := QueryParams{}.Add("page", 1).Add("sort", "name")
	q = q.Set("page", 2)

	assert.Equal(t, "page=2&sort=name", q.Encode())

	v, ok := q.Get("page")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.Get("missing")
	assert.False(t, ok)
}

func TestQueryParams_value_stringification(t *testing.T) {
	t.Parallel()

	q := QueryParams{}.
		Add("s", "a b").
		Add("i", 42).
		Add("f", 2.5).
		Add("b", false)

	assert.Equal(t, "s=a+b&i=42&f=2.5&b=false", q.Encode())
}

func TestQueryParams_clone_is_independent(t *testing.T) {
	t.Parallel()

	q := QueryParams{}.Add("a", 1)
	c := q.Clone()
	c = c.Set("a", 2)

	v, _ := q.Get("a")
	assert.Equal(t, 1, v)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
}

func TestQueryParams_empty_encodes_empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", QueryParams{}.Encode())
	assert.Equal(t, "", QueryParams(nil).Encode())
}
