package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_Scalar(t *testing.T) {
	v, err := ParseValue([]byte(`"Go"`))
	require.NoError(t, err)
	assert.Equal(t, Scalar("Go"), v)
}

func TestParseValue_Object(t *testing.T) {
	v, err := ParseValue([]byte(` {"name":"Go","level":"Expert"}`))
	require.NoError(t, err)
	assert.Equal(t, Object{"name": "Go", "level": "Expert"}, v)
}

func TestParseValue_List(t *testing.T) {
	v, err := ParseValue([]byte(`[{"name":"Go"},{"name":"Rust","level":"Beginner"}]`))
	require.NoError(t, err)

	list, ok := v.(List)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "Rust", list[1].Get("name"))
}

func TestParseValue_Null(t *testing.T) {
	v, err := ParseValue([]byte(`null`))
	require.NoError(t, err)
	assert.Equal(t, Scalar(""), v)
}

func TestParseValue_Invalid(t *testing.T) {
	for _, raw := range []string{``, `42`, `true`, `{"a":1}`, `["x"]`} {
		_, err := ParseValue([]byte(raw))
		assert.Error(t, err, "input %q", raw)
	}
}

func TestMarshalValue(t *testing.T) {
	out, err := MarshalValue(List{nil, {"name": "Go"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{},{"name":"Go"}]`, string(out))

	out, err = MarshalValue(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = MarshalValue(Object(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestFields_MergeDoesNotMutate(t *testing.T) {
	orig := Fields{"name": "Go", "level": ""}
	merged := orig.Merge(map[string]string{"level": "Expert"})

	assert.Equal(t, "", orig.Get("level"))
	assert.Equal(t, "Expert", merged.Get("level"))
	assert.Equal(t, "Go", merged.Get("name"))
}

func TestFields_CloneNil(t *testing.T) {
	var f Fields
	c := f.Clone()
	assert.NotNil(t, c)
	assert.Empty(t, c)
	assert.Equal(t, "", f.Get("missing"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "scalar", KindScalar.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
