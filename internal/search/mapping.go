package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for chart documents.
// Bump mappingVersion in index.go when changing this; existing indexes are
// rebuilt from the store on version mismatch.
func buildIndexMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = en.AnalyzerName
	textField.Store = true
	textField.IncludeTermVectors = true

	// Exact-match fields used for filtering, never scored as text.
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name
	keywordField.Store = true

	numericField := bleve.NewNumericFieldMapping()
	numericField.Store = true

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("id", keywordField)
	doc.AddFieldMappingsAt("type", keywordField)
	doc.AddFieldMappingsAt("name", textField)
	doc.AddFieldMappingsAt("artist", textField)
	doc.AddFieldMappingsAt("slug", keywordField)
	doc.AddFieldMappingsAt("group_id", keywordField)
	doc.AddFieldMappingsAt("charted_at", numericField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	im.DefaultAnalyzer = en.AnalyzerName
	return im
}
