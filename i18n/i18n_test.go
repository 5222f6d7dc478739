package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

func TestLocalizer(t *testing.T) {
	t.Parallel()

	tr, err := New()
	require.NoError(t, err)

	en := tr.Localizer("en")
	assert.Equal(t, "Basic Statistics", en.T("prompt.basic_stats", nil))
	assert.Equal(t, "12 trades", en.T("unit.trades", map[string]any{"Count": 12}))

	ja := tr.Localizer("ja")
	assert.Equal(t, "基本統計", ja.T("prompt.basic_stats", nil))
	assert.Equal(t, "1,000円", ja.T("unit.money", map[string]any{"Amount": "1,000"}))
}

func TestLocalizerFallbacks(t *testing.T) {
	t.Parallel()

	tr, err := New()
	require.NoError(t, err)

	assert.Equal(t, "Basic Statistics", tr.Localizer("fr").T("prompt.basic_stats", nil))
	assert.Equal(t, "Basic Statistics", tr.Localizer("").T("prompt.basic_stats", nil))
	assert.Equal(t, "no.such.message", tr.Localizer("ja").T("no.such.message", nil))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	t.Parallel()

	load := func(lang string) map[string]string {
		data, err := localeFS.ReadFile("locales/" + lang + ".yaml")
		require.NoError(t, err)
		var m map[string]string
		require.NoError(t, yaml.Unmarshal(data, &m))
		return m
	}

	en := load("en")
	require.NotEmpty(t, en)
	for _, lang := range Languages {
		msgs := load(lang)
		assert.Len(t, msgs, len(en), lang)
		for id := range en {
			assert.Contains(t, msgs, id, lang)
		}
	}
}

func TestSupportedAndTag(t *testing.T) {
	t.Parallel()

	assert.True(t, Supported("en"))
	assert.True(t, Supported("ja-JP"))
	assert.False(t, Supported("de"))
	assert.False(t, Supported("not a tag"))

	assert.Equal(t, language.Japanese, Tag("ja"))
	assert.Equal(t, language.English, Tag("de"))
}
