package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/colabnow/internal/tagfilter"
)

type sample struct {
	Tags  string `validate:"hashtags"`
	Title string `validate:"notblank"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, registerCustomRules(v))
	return v
}

func TestHashtags(t *testing.T) {
	v := newValidator(t)

	for _, ok := range []string{"", "#python", "#python #ML", "#c++ #node.js", "#веб #data_science"} {
		assert.NoError(t, v.Struct(sample{Tags: ok, Title: "x"}), ok)
	}
	for _, bad := range []string{"#drop;table", "#a,#b", "<script>"} {
		assert.Error(t, v.Struct(sample{Tags: bad, Title: "x"}), bad)
	}
}

func TestHashtagsAcceptsUnicodeSpaces(t *testing.T) {
	v := newValidator(t)

	for _, raw := range []string{"#go\u00a0#web", "#go\u3000#web", "#go\u2009#web", "#go\u0085#web", "#go\v#web"} {
		assert.NoError(t, v.Struct(sample{Tags: raw, Title: "x"}), "%q", raw)
		assert.Equal(t, []string{"go", "web"}, tagfilter.Parse(raw), "%q", raw)
	}
}

func TestNotBlank(t *testing.T) {
	v := newValidator(t)

	assert.Error(t, v.Struct(sample{Title: "   "}))
	assert.NoError(t, v.Struct(sample{Title: " a "}))
}

func TestDescribe(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(sample{Tags: "#a;b", Title: ""})
	details := Describe(err)

	assert.Equal(t, "hashtags", details["tags"])
	assert.Equal(t, "notblank", details["title"])
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "desired_size", toSnake("DesiredSize"))
	assert.Equal(t, "password2", toSnake("Password2"))
}

func TestNewUsesValidateTag(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(sample{Tags: "#go", Title: "ok"}))
	assert.Error(t, v.Struct(sample{Tags: "#go", Title: "   "}))
}
