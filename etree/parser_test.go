package etree_test

import (
	"testing"

	beevik "github.com/beevik/etree"
	"github.com/fwojciec/epidoc"
	"github.com/fwojciec/epidoc/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inscription = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <text><body><div type="edition"><ab>ΑΒΓ</ab></div></body></text>
</TEI>`

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses well-formed xml", func(t *testing.T) {
		t.Parallel()

		log := &epidoc.Log{}
		doc := etree.NewParser(log).Parse(inscription)

		require.NotNil(t, doc)
		assert.Equal(t, "TEI", doc.Root().Tag)
		assert.Equal(t, 0, log.Count())
	})

	t.Run("reports content before the prolog", func(t *testing.T) {
		t.Parallel()

		log := &epidoc.Log{}
		doc := etree.NewParser(log).Parse("\ufeff" + inscription)

		assert.Nil(t, doc)
		report := epidoc.Drain(log)
		require.Len(t, report, 1)
		assert.Equal(t, epidoc.CodeContentInProlog, report[0].Code)
		assert.True(t, report.IsProlog())
	})

	t.Run("reports text without markup as prolog content", func(t *testing.T) {
		t.Parallel()

		log := &epidoc.Log{}
		doc := etree.NewParser(log).Parse("not xml at all")

		assert.Nil(t, doc)
		assert.True(t, epidoc.Drain(log).IsProlog())
	})

	t.Run("accepts leading xml whitespace", func(t *testing.T) {
		t.Parallel()

		log := &epidoc.Log{}
		doc := etree.NewParser(log).Parse("\n  <TEI/>")

		assert.NotNil(t, doc)
		assert.Equal(t, 0, log.Count())
	})

	t.Run("reports malformed attributes", func(t *testing.T) {
		t.Parallel()

		log := &epidoc.Log{}
		doc := etree.NewParser(log).Parse(`<TEI><text n=></text></TEI>`)

		assert.Nil(t, doc)
		report := epidoc.Drain(log)
		require.Len(t, report, 1)
		assert.Equal(t, epidoc.CodeParse, report[0].Code)
		assert.False(t, report.IsProlog())
	})

	t.Run("reports content after the root", func(t *testing.T) {
		t.Parallel()

		log := &epidoc.Log{}
		doc := etree.NewParser(log).Parse("<TEI/>trailing")

		assert.Nil(t, doc)
		report := epidoc.Drain(log)
		require.Len(t, report, 1)
		assert.Equal(t, epidoc.CodeParse, report[0].Code)
	})

	t.Run("reports empty input", func(t *testing.T) {
		t.Parallel()

		log := &epidoc.Log{}
		doc := etree.NewParser(log).Parse("  ")

		assert.Nil(t, doc)
		assert.True(t, epidoc.Drain(log).Contains("premature end of file"))
	})
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	t.Run("round trips a document", func(t *testing.T) {
		t.Parallel()

		doc := beevik.NewDocument()
		doc.CreateElement("TEI").CreateElement("text").SetText("ΑΒΓ")

		s, err := etree.Serialize(doc)

		require.NoError(t, err)
		assert.Equal(t, "<TEI><text>ΑΒΓ</text></TEI>", s)
	})

	t.Run("rejects empty document", func(t *testing.T) {
		t.Parallel()

		_, err := etree.Serialize(beevik.NewDocument())

		assert.Equal(t, epidoc.EINVALID, epidoc.ErrorCode(err))
	})
}
