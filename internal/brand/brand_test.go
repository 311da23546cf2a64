package brand

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC)
)

func TestDefault(t *testing.T) {
	b := Default()

	assert.Equal(t, DefaultName, b.Metadata.Name)
	assert.Equal(t, CurrentVersion, b.Metadata.Version)
	assert.Len(t, b.Colors.Chart, ChartSize)
	assert.Nil(t, b.Strategy)
	assert.NotNil(t, b.Assets.Additional)
	assert.Equal(t, "9999px", b.Spacing.Radius["full"])
	assert.Equal(t, "8rem", b.Typography.Scale["9xl"])

	for _, s := range Slots {
		light, ok := b.Colors.Light.Get(s)
		require.True(t, ok)
		assert.NotEmpty(t, light, "light %s", s)
		dark, _ := b.Colors.Dark.Get(s)
		assert.NotEmpty(t, dark, "dark %s", s)
	}
}

func TestDefaultReturnsFreshValues(t *testing.T) {
	a := Default()
	a.Colors.Chart[0] = "0 0% 0%"
	a.Spacing.Radius["full"] = "1px"

	b := Default()
	assert.Equal(t, "12 76% 61%", b.Colors.Chart[0])
	assert.Equal(t, "9999px", b.Spacing.Radius["full"])
}

func TestNew(t *testing.T) {
	b := New("Acme", t0)
	assert.Equal(t, "Acme", b.Metadata.Name)
	assert.Equal(t, t0, b.Metadata.CreatedAt)
	assert.Equal(t, t0, b.Metadata.UpdatedAt)
}

func TestTimestamp(t *testing.T) {
	local := time.Now().In(time.FixedZone("UTC-5", -5*60*60))

	got := Timestamp(local)
	assert.True(t, got.Equal(local))
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, got, got.Round(0))

	b := New("Now", local)
	assert.Equal(t, got, b.Metadata.CreatedAt)
	assert.Equal(t, got, b.WithName("Later", local).Metadata.UpdatedAt)
}

func TestCloneIsDeep(t *testing.T) {
	orig := New("Acme", t0).
		AddValue(BrandValue{Name: "Trust"}, t0).
		AddTrait("bold", t0).
		AddAsset(Asset{Name: "pattern", URL: "https://cdn.example.com/p.svg"}, t0)
	orig, err := orig.WithLogo(LogoPrimary, Logo{Name: "Mark"}, t0)
	require.NoError(t, err)

	c := orig.Clone()
	require.Equal(t, orig, c)

	c.Colors.Chart[0] = "1 1% 1%"
	c.Typography.Heading.Fallback[0] = "serif"
	c.Typography.Heading.Weights[0] = 100
	c.Typography.Scale["xs"] = "1px"
	c.Spacing.Spacing["md"] = "2px"
	c.Strategy.Values[0].Name = "Changed"
	c.Strategy.ToneOfVoice.Traits[0] = "quiet"
	c.Assets.PrimaryLogo.Name = "Other"
	c.Assets.Additional[0].Name = "other"

	assert.Equal(t, "12 76% 61%", orig.Colors.Chart[0])
	assert.Equal(t, "system-ui", orig.Typography.Heading.Fallback[0])
	assert.Equal(t, 600, orig.Typography.Heading.Weights[0])
	assert.Equal(t, "0.75rem", orig.Typography.Scale["xs"])
	assert.Equal(t, "1rem", orig.Spacing.Spacing["md"])
	assert.Equal(t, "Trust", orig.Strategy.Values[0].Name)
	assert.Equal(t, "bold", orig.Strategy.ToneOfVoice.Traits[0])
	assert.Equal(t, "Mark", orig.Assets.PrimaryLogo.Name)
	assert.Equal(t, "pattern", orig.Assets.Additional[0].Name)
}

func TestSlots(t *testing.T) {
	assert.Len(t, Slots, 11)

	s, ok := ParseSlot("ring")
	assert.True(t, ok)
	assert.Equal(t, SlotRing, s)
	_, ok = ParseSlot("sidebar")
	assert.False(t, ok)

	var p ColorPalette
	assert.True(t, p.Set(SlotBorder, "1 2% 3%"))
	assert.Equal(t, "1 2% 3%", p.Border)
	assert.False(t, p.Set(Slot("sidebar"), "x"))
	_, ok = p.Get(Slot("sidebar"))
	assert.False(t, ok)
}

func TestOrderedKeys(t *testing.T) {
	m := map[string]string{"full": "9999px", "sm": "1px", "pill": "20px", "none": "0", "blob": "3px"}
	assert.Equal(t, []string{"none", "sm", "full", "blob", "pill"}, OrderedKeys(m, RadiusTokens))
	assert.Empty(t, OrderedKeys(nil, RadiusTokens))
}

func TestMutationsDoNotModifyReceiver(t *testing.T) {
	orig := New("Acme", t0)
	snapshot := orig.Clone()

	renamed := orig.WithName("Globex", t1)
	assert.Equal(t, "Globex", renamed.Metadata.Name)
	assert.Equal(t, t1, renamed.Metadata.UpdatedAt)
	assert.Equal(t, t0, renamed.Metadata.CreatedAt)

	recolored, err := orig.WithColor(ModeDark, SlotPrimary, "10 50% 50%", t1)
	require.NoError(t, err)
	assert.Equal(t, "10 50% 50%", recolored.Colors.Dark.Primary)

	charted := orig.WithChart([]string{"1 1% 1%"}, t1)
	assert.Equal(t, []string{"1 1% 1%"}, charted.Colors.Chart)

	radius := orig.WithRadius("pill", "20px", t1)
	assert.Equal(t, "20px", radius.Spacing.Radius["pill"])
	spaced := orig.WithSpacing("3xl", "4rem", t1)
	assert.Equal(t, "4rem", spaced.Spacing.Spacing["3xl"])

	_ = orig.AddValue(BrandValue{Name: "Speed"}, t1)
	_ = orig.AddTrait("calm", t1)
	_ = orig.AddAsset(Asset{Name: "x"}, t1)
	_, _ = orig.WithLogo(LogoFavicon, Logo{Name: "icon"}, t1)

	assert.Equal(t, snapshot, orig)
}

func TestWithMetadata(t *testing.T) {
	tagline := "Build faster"
	industry := "Software"
	b := New("Acme", t0).WithMetadata(MetadataPatch{Tagline: &tagline, Industry: &industry}, t1)

	assert.Equal(t, "Acme", b.Metadata.Name)
	assert.Equal(t, tagline, b.Metadata.Tagline)
	assert.Equal(t, industry, b.Metadata.Industry)
	assert.Equal(t, t1, b.Metadata.UpdatedAt)
}

func TestWithColorUnknown(t *testing.T) {
	b := New("Acme", t0)

	_, err := b.WithColor(Mode("sepia"), SlotPrimary, "1 1% 1%", t1)
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = b.WithColor(ModeLight, Slot("sidebar"), "1 1% 1%", t1)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestWithFont(t *testing.T) {
	b := New("Acme", t0)
	font := FontFamily{Name: "Lora", Weights: []int{400}, Styles: []string{"normal"}, Fallback: []string{"serif"}}

	out, err := b.WithFont(FontHeading, font, t1)
	require.NoError(t, err)
	assert.Equal(t, "Lora", out.Typography.Heading.Name)
	assert.Equal(t, "Inter", out.Typography.Body.Name)

	font.Fallback[0] = "cursive"
	assert.Equal(t, "serif", out.Typography.Heading.Fallback[0])

	_, err = b.WithFont(FontRole("display"), font, t1)
	assert.ErrorIs(t, err, ErrUnknownField)

	got, ok := out.Typography.Font(FontHeading)
	assert.True(t, ok)
	assert.Equal(t, []string{"Lora", "serif"}, got.Stack())
}

func TestValueLifecycle(t *testing.T) {
	b := New("Acme", t0).AddValue(BrandValue{Name: "Trust", Description: "Keep promises"}, t1)
	require.NotNil(t, b.Strategy)
	require.Len(t, b.Strategy.Values, 1)

	id := b.Strategy.Values[0].ID
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	kept := b.AddValue(BrandValue{ID: "fixed", Name: "Craft"}, t1)
	assert.Equal(t, "fixed", kept.Strategy.Values[1].ID)

	updated, err := kept.UpdateValue(BrandValue{ID: id, Name: "Integrity"}, t1)
	require.NoError(t, err)
	assert.Equal(t, "Integrity", updated.Strategy.Values[0].Name)
	assert.Equal(t, "Trust", kept.Strategy.Values[0].Name)

	removed, err := updated.RemoveValue(id, t1)
	require.NoError(t, err)
	require.Len(t, removed.Strategy.Values, 1)
	assert.Equal(t, "fixed", removed.Strategy.Values[0].ID)
	assert.Len(t, updated.Strategy.Values, 2)

	_, err = removed.RemoveValue("missing", t1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = removed.UpdateValue(BrandValue{ID: "missing"}, t1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = New("x", t0).RemoveValue("any", t1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTraits(t *testing.T) {
	b := New("Acme", t0).AddTrait("Bold", t1).AddTrait("bold", t1).AddTrait("Warm", t1)
	assert.Equal(t, []string{"Bold", "Warm"}, b.Strategy.ToneOfVoice.Traits)

	out, err := b.RemoveTrait("BOLD", t1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Warm"}, out.Strategy.ToneOfVoice.Traits)
	assert.Equal(t, []string{"Bold", "Warm"}, b.Strategy.ToneOfVoice.Traits)

	_, err = out.RemoveTrait("missing", t1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogosAndAssets(t *testing.T) {
	b, err := New("Acme", t0).WithLogo(LogoPrimary, Logo{Name: "Mark", LightURL: "https://cdn.example.com/l.svg"}, t1)
	require.NoError(t, err)
	require.NotNil(t, b.Assets.PrimaryLogo)
	assert.NotEmpty(t, b.Assets.PrimaryLogo.ID)
	assert.Equal(t, t1, b.Assets.PrimaryLogo.UploadedAt)
	assert.Same(t, b.Assets.PrimaryLogo, b.Assets.Logo(LogoPrimary))
	assert.Nil(t, b.Assets.Logo(LogoKind("banner")))

	_, err = b.WithLogo(LogoKind("banner"), Logo{}, t1)
	assert.ErrorIs(t, err, ErrUnknownField)

	cleared, err := b.RemoveLogo(LogoPrimary, t1)
	require.NoError(t, err)
	assert.Nil(t, cleared.Assets.PrimaryLogo)
	assert.NotNil(t, b.Assets.PrimaryLogo)

	_, err = cleared.RemoveLogo(LogoPrimary, t1)
	assert.ErrorIs(t, err, ErrNotFound)

	withAsset := b.AddAsset(Asset{Name: "Pattern", Type: "image", URL: "https://cdn.example.com/p.png"}, t1)
	require.Len(t, withAsset.Assets.Additional, 1)
	assert.Equal(t, 2, withAsset.Assets.Count())

	assetID := withAsset.Assets.Additional[0].ID
	noAsset, err := withAsset.RemoveAsset(assetID, t1)
	require.NoError(t, err)
	assert.Empty(t, noAsset.Assets.Additional)

	_, err = noAsset.RemoveAsset(assetID, t1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithStrategy(t *testing.T) {
	s := &Strategy{Mission: "Help", Values: []BrandValue{{ID: "a", Name: "A"}}}
	b := New("Acme", t0).WithStrategy(s, t1)
	s.Values[0].Name = "mutated"
	assert.Equal(t, "A", b.Strategy.Values[0].Name)

	cleared := b.WithStrategy(nil, t1)
	assert.Nil(t, cleared.Strategy)
}
