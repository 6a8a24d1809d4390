package lore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/schema"
)

func TestInlineMarkup(t *testing.T) {
	cases := map[string]string{
		"plain text":                  "plain text",
		"a {soft} word":               "a *soft* word",
		"a {{loud}} word":             "a **loud** word",
		"roll |1d6| damage":           "roll `1d6` damage",
		"see [1Fireball] for details": "see **Fireball** for details",
		"snake_case":                  `snake\_case`,
	}
	for in, want := range cases {
		assert.Equal(t, want, Markdown(in, ""), in)
	}
}

func TestParagraphBreaks(t *testing.T) {
	assert.Equal(t, "first\n\nsecond", Markdown("first$second", ""))
	assert.Equal(t, "only", Markdown("only$$", ""))
}

func TestList(t *testing.T) {
	got := Markdown("Choose one:*fire*cold^shard^storm*acid$After.", "")
	want := "Choose one:\n\n- fire\n- cold\n  - shard\n  - storm\n- acid\n\nAfter."
	assert.Equal(t, want, got)
}

func TestTable(t *testing.T) {
	got := Markdown("Damage by level.#Level;Damage:1st;1d6:5th;3d6#Done.", "")
	want := "Damage by level.\n\n" +
		"| Level | Damage |\n" +
		"| --- | --- |\n" +
		"| 1st | 1d6 |\n" +
		"| 5th | 3d6 |\n\n" +
		"Done."
	assert.Equal(t, want, got)
}

func TestListFollowedByTable(t *testing.T) {
	got := Markdown("*one*two#a;b#", "")
	assert.Equal(t, "- one\n- two\n\n| a | b |\n| --- | --- |", got)
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "a **Fire**ball of **fire**", Markdown("a Fireball of fire", "FIRE"))
	// Strong and fixed text are left alone.
	assert.Equal(t, "**fire** `fire`", Markdown("{{fire}} |fire|", "fire"))
}

func TestReferences(t *testing.T) {
	refs := References("Like [1Fireball] but see [2Energy Ray], [4Power Attack] and [Nowhere].")
	assert.Equal(t, []Reference{
		{Kind: "spells", Name: "Fireball"},
		{Kind: "powers", Name: "Energy Ray"},
		{Kind: "feats", Name: "Power Attack"},
		{Kind: "", Name: "Nowhere"},
	}, refs)

	refs = References("*[3Rage]*plain#[5Tumble];x#")
	assert.Equal(t, []Reference{
		{Kind: "abilities", Name: "Rage"},
		{Kind: "skills", Name: "Tumble"},
	}, refs)
}

func TestUnterminatedMarkupIsClosed(t *testing.T) {
	assert.Equal(t, "*open*", Markdown("{open", ""))
	assert.Equal(t, "`code`", Markdown("|code", ""))
}

func TestDocument(t *testing.T) {
	doc := Document("Fireball", []catalog.DetailLine{
		{Value: "Evocation [Fire]"},
		{Label: "Range", Value: "Long"},
	}, "A {bright} flash.", "")
	assert.True(t, strings.HasPrefix(doc, "# Fireball\n\n"))
	assert.Contains(t, doc, `*Evocation \[Fire\]*`)
	assert.Contains(t, doc, "**Range:** Long")
	assert.Contains(t, doc, "A *bright* flash.")
}

func TestRender(t *testing.T) {
	out, err := Render(Markdown("A {{bold}} claim.", ""), 60)
	require.NoError(t, err)
	assert.Contains(t, out, "bold")
}

const previewSchema = `
kind: spells
facets: [fire]
detail_fields:
  - label: ""
  - label: Range
`

func TestPreview(t *testing.T) {
	sch, err := schema.Parse([]byte(previewSchema))
	require.NoError(t, err)
	data := "Fireball@1@Evocation;Long@A {bright} flash of fire.\n" +
		"Odd@1@only@Detail info does not fit.\n"
	c, err := catalog.Load(t.Context(), "spells", sch, catalog.FromBytes("mem", []byte(data)))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	doc, err := Preview(c, c.Record(0), "fire")
	require.NoError(t, err)
	assert.Contains(t, doc, "# Fireball")
	assert.Contains(t, doc, "**Range:** Long")
	assert.Contains(t, doc, "flash of **fire**.")

	doc, err = Preview(c, c.Record(1), "")
	require.NoError(t, err)
	assert.Equal(t, "# Odd\n\nDetail info does not fit.\n", doc)
}
