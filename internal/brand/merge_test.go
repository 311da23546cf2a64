package brand

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePartial(t *testing.T, doc string) Partial {
	t.Helper()

	var p Partial
	require.NoError(t, json.Unmarshal([]byte(doc), &p))

	return p
}

func TestMergeEmptyPartialKeepsBase(t *testing.T) {
	base := New("Acme", t0)
	assert.Equal(t, base, Merge(base, Partial{}))
}

func TestMergeMetadataKeyByKey(t *testing.T) {
	base := New("Acme", t0)
	out := Merge(base, decodePartial(t, `{"metadata":{"tagline":"Fast"}}`))

	assert.Equal(t, "Acme", out.Metadata.Name)
	assert.Equal(t, "Fast", out.Metadata.Tagline)
	assert.Equal(t, t0, out.Metadata.CreatedAt)
}

func TestMergePaletteSlotBySlot(t *testing.T) {
	base := Default()
	out := Merge(base, decodePartial(t, `{"colors":{"light":{"primary":"10 50% 30%"},"dark":{"ring":"1 1% 1%"}}}`))

	assert.Equal(t, "10 50% 30%", out.Colors.Light.Primary)
	assert.Equal(t, base.Colors.Light.Background, out.Colors.Light.Background)
	assert.Equal(t, "1 1% 1%", out.Colors.Dark.Ring)
	assert.Equal(t, base.Colors.Dark.Primary, out.Colors.Dark.Primary)
	assert.Equal(t, base.Colors.Chart, out.Colors.Chart)
}

func TestMergeChartReplacesWholesale(t *testing.T) {
	out := Merge(Default(), decodePartial(t, `{"colors":{"chart":["1 1% 1%","2 2% 2%"]}}`))
	assert.Equal(t, []string{"1 1% 1%", "2 2% 2%"}, out.Colors.Chart)

	empty := Merge(Default(), decodePartial(t, `{"colors":{"chart":[]}}`))
	assert.Empty(t, empty.Colors.Chart)
}

func TestMergeTypography(t *testing.T) {
	base := Default()
	out := Merge(base, decodePartial(t, `{
		"typography": {
			"heading": {"name": "Lora", "fallback": ["serif"]},
			"scale": {"base": "1.0625rem", "10xl": "10rem"},
			"lineHeight": {"tight": "1.1"},
			"letterSpacing": {"wide": "0.05em"}
		}
	}`))

	assert.Equal(t, "Lora", out.Typography.Heading.Name)
	assert.Equal(t, []string{"serif"}, out.Typography.Heading.Fallback)
	assert.Equal(t, base.Typography.Heading.Weights, out.Typography.Heading.Weights)
	assert.Equal(t, base.Typography.Heading.URL, out.Typography.Heading.URL)
	assert.Equal(t, base.Typography.Body, out.Typography.Body)

	assert.Equal(t, "1.0625rem", out.Typography.Scale["base"])
	assert.Equal(t, "10rem", out.Typography.Scale["10xl"])
	assert.Equal(t, "0.75rem", out.Typography.Scale["xs"])

	assert.Equal(t, "1.1", out.Typography.LineHeight.Tight)
	assert.Equal(t, base.Typography.LineHeight.Normal, out.Typography.LineHeight.Normal)
	assert.Equal(t, "0.05em", out.Typography.LetterSpacing.Wide)
	assert.Equal(t, base.Typography.LetterSpacing.Tight, out.Typography.LetterSpacing.Tight)

	_, ok := base.Typography.Scale["10xl"]
	assert.False(t, ok, "base must not be modified")
}

func TestMergeSpacingKeyByKey(t *testing.T) {
	out := Merge(Default(), decodePartial(t, `{"spacing":{"radius":{"lg":"1rem"},"spacing":{"3xl":"4rem"}}}`))

	assert.Equal(t, "1rem", out.Spacing.Radius["lg"])
	assert.Equal(t, "9999px", out.Spacing.Radius["full"])
	assert.Equal(t, "4rem", out.Spacing.Spacing["3xl"])
	assert.Equal(t, "1rem", out.Spacing.Spacing["md"])
}

func TestMergeStrategyReplacesWholesale(t *testing.T) {
	base := New("Acme", t0).
		AddValue(BrandValue{ID: "a", Name: "Old"}, t0).
		AddTrait("loud", t0)
	base.Strategy.Mission = "Old mission"

	out := Merge(base, decodePartial(t, `{"strategy":{"purpose":"New","values":[{"id":"b","name":"New"}]}}`))

	require.NotNil(t, out.Strategy)
	assert.Equal(t, "New", out.Strategy.Purpose)
	assert.Empty(t, out.Strategy.Mission)
	assert.Equal(t, []BrandValue{{ID: "b", Name: "New"}}, out.Strategy.Values)
	assert.Empty(t, out.Strategy.ToneOfVoice.Traits)
	assert.Equal(t, "Old mission", base.Strategy.Mission)
}

func TestMergeAssets(t *testing.T) {
	base, err := New("Acme", t0).WithLogo(LogoPrimary, Logo{ID: "p", Name: "Primary"}, t0)
	require.NoError(t, err)
	base, err = base.WithLogo(LogoFavicon, Logo{ID: "f", Name: "Fav"}, t0)
	require.NoError(t, err)
	base = base.AddAsset(Asset{ID: "old", Name: "Old"}, t0)

	out := Merge(base, decodePartial(t, `{"assets":{"primaryLogo":{"id":"n","name":"New"},"additional":[{"id":"x","name":"X"}]}}`))

	assert.Equal(t, "New", out.Assets.PrimaryLogo.Name)
	assert.Equal(t, "Fav", out.Assets.Favicon.Name)
	require.Len(t, out.Assets.Additional, 1)
	assert.Equal(t, "x", out.Assets.Additional[0].ID)
	assert.Equal(t, "Primary", base.Assets.PrimaryLogo.Name)
}

func TestPartialOfReproducesBrand(t *testing.T) {
	src := New("Globex", t1).AddValue(BrandValue{ID: "v", Name: "Grit"}, t1)
	src, err := src.WithColor(ModeLight, SlotAccent, "5 5% 5%", t1)
	require.NoError(t, err)

	out := Merge(Default(), PartialOf(src))
	assert.Equal(t, src, out)
}

func TestPartialIsEmpty(t *testing.T) {
	assert.True(t, Partial{}.IsEmpty())
	assert.True(t, decodePartial(t, `{"strategy":{"purpose":"x"}}`).IsEmpty())
	assert.False(t, decodePartial(t, `{"metadata":{}}`).IsEmpty())
	assert.False(t, decodePartial(t, `{"typography":{}}`).IsEmpty())
}

func TestPalettePatchAccessors(t *testing.T) {
	var nilPatch *PalettePatch
	assert.Nil(t, nilPatch.Get(SlotPrimary))

	p := &PalettePatch{}
	p.Set(SlotCard, "1 1% 1%")
	require.NotNil(t, p.Get(SlotCard))
	assert.Equal(t, "1 1% 1%", *p.Get(SlotCard))
	assert.Nil(t, p.Get(SlotRing))
	assert.Nil(t, p.Get(Slot("sidebar")))
}
