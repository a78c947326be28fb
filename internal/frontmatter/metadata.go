package frontmatter

import (
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/blogon/internal/apperr"
	"github.com/starford/blogon/internal/models"
)

// rawMetadata mirrors models.Metadata with the date left undecoded so that
// "null" and YAML timestamps can be told apart.
type rawMetadata struct {
	Title string    `yaml:"title"`
	Date  yaml.Node `yaml:"date"`
	Tags  []string  `yaml:"tags"`
}

// Decode deserializes a metadata block read from path.
func Decode(data []byte, path string) (models.Metadata, error) {
	var raw rawMetadata
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return models.Metadata{}, apperr.Malformedf(path, "front matter is not valid YAML: %w", err)
	}

	date, err := decodeDate(&raw.Date)
	if err != nil {
		return models.Metadata{}, apperr.Malformedf(path, "invalid `date` field: %w", err)
	}

	meta := models.Metadata{
		Title: raw.Title,
		Date:  date,
		Tags:  raw.Tags,
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if err := validation.ValidateStruct(&meta,
		validation.Field(&meta.Title, validation.Required),
	); err != nil {
		return models.Metadata{}, apperr.Malformed(path, err)
	}
	return meta, nil
}

// decodeDate maps an absent value, a YAML null or the literal "null" to no
// date, and anything else to a YYYY-MM-DD day.
func decodeDate(node *yaml.Node) (*models.Date, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("expected a YYYY-MM-DD string at line %d", node.Line)
	}
	if node.ShortTag() == "!!null" || node.Value == "null" {
		return nil, nil
	}
	d, err := models.ParseDate(node.Value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Read extracts and decodes the metadata block of the file read from r.
// The returned Block tells where the body starts.
func Read(r io.ReadSeeker, path string) (models.Metadata, Block, error) {
	block, err := Extract(r, path, DefaultChunkSize)
	if err != nil {
		return models.Metadata{}, Block{}, err
	}
	meta, err := Decode(block.Data, path)
	if err != nil {
		return models.Metadata{}, Block{}, err
	}
	return meta, block, nil
}
