// SPDX-License-Identifier: MIT

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/getmm/genelength"
)

// Annotation formats.
const (
	FormatBioMart = "biomart"
	FormatGTF     = "gtf"
)

// DefaultGeneAttribute is the GTF attribute that names a feature's gene.
const DefaultGeneAttribute = "gene_name"

// BioMart export column positions:
// Gene stable ID, gene_name, seqname, start, end, strand, exon_name.
const (
	bmGeneName = 1
	bmStart    = 3
	bmEnd      = 4
	bmMinCols  = 5
)

// GTF column positions.
const (
	gtfFeature   = 2
	gtfStart     = 3
	gtfEnd       = 4
	gtfAttribute = 8
	gtfCols      = 9
)

// AnnotationOptions selects how an annotation file is read.
type AnnotationOptions struct {
	// Format is FormatBioMart or FormatGTF.
	Format string

	// GeneAttribute names the GTF attribute holding the gene key.
	// Empty means DefaultGeneAttribute.
	GeneAttribute string

	// FeatureType keeps only GTF rows of this feature type ("exon", "gene").
	// Empty keeps every row.
	FeatureType string
}

// ReadAnnotation dispatches to the reader named by opts.Format.
func ReadAnnotation(r io.Reader, opts AnnotationOptions) ([]genelength.Feature, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case FormatBioMart, "":
		return ReadBioMart(r)
	case FormatGTF:
		return ReadGTF(r, opts.GeneAttribute, opts.FeatureType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, opts.Format)
	}
}

// ReadAnnotationFile is ReadAnnotation over the file at path.
func ReadAnnotationFile(path string, opts AnnotationOptions) ([]genelength.Feature, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	feats, err := ReadAnnotation(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return feats, nil
}

// ReadBioMart parses a tab-separated BioMart export. Lines starting with '#'
// are comments; a leading "Gene stable ID" header row is skipped. The gene key
// is the gene_name column; rows with an empty gene name are kept and later
// ignored by genelength.Aggregate.
func ReadBioMart(r io.Reader) ([]genelength.Feature, error) {
	c := newTSVReader(r)

	var out []genelength.Feature
	first := true
	for {
		rec, err := c.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		line, _ := c.FieldPos(0)
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(rec[0]), "Gene stable ID") {
				continue
			}
		}
		if len(rec) < bmMinCols {
			return nil, recordErrorf(line, "want at least %d fields, got %d", bmMinCols, len(rec))
		}
		start, end, err := parseSpan(rec[bmStart], rec[bmEnd])
		if err != nil {
			return nil, recordErrorf(line, "%v", err)
		}
		out = append(out, genelength.Feature{
			Gene:  strings.TrimSpace(rec[bmGeneName]),
			Start: start,
			End:   end,
		})
	}

	return out, nil
}

// ReadGTF parses a GTF file, keying each row by the value of the attribute
// named attr (DefaultGeneAttribute when empty). Rows without the attribute
// carry no gene and are returned with an empty Gene. When featureType is set,
// rows of other feature types are dropped.
func ReadGTF(r io.Reader, attr, featureType string) ([]genelength.Feature, error) {
	if attr == "" {
		attr = DefaultGeneAttribute
	}
	re, err := attributePattern(attr)
	if err != nil {
		return nil, err
	}
	c := newTSVReader(r)

	var out []genelength.Feature
	for {
		rec, err := c.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		line, _ := c.FieldPos(0)
		if len(rec) < gtfCols {
			return nil, recordErrorf(line, "want %d fields, got %d", gtfCols, len(rec))
		}
		if featureType != "" && rec[gtfFeature] != featureType {
			continue
		}
		start, end, err := parseSpan(rec[gtfStart], rec[gtfEnd])
		if err != nil {
			return nil, recordErrorf(line, "%v", err)
		}
		var gene string
		if m := re.FindStringSubmatch(rec[gtfAttribute]); m != nil {
			gene = m[1]
		}
		out = append(out, genelength.Feature{Gene: gene, Start: start, End: end})
	}

	return out, nil
}

// attributePattern matches `key "value"` at the start of the attribute column
// or after a ';' separator.
func attributePattern(attr string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?:^|;)\s*` + regexp.QuoteMeta(attr) + `\s+"([^"]+)"`)
}

func newTSVReader(r io.Reader) *csv.Reader {
	c := csv.NewReader(r)
	c.Comma = '\t'
	c.Comment = '#'
	c.FieldsPerRecord = -1
	c.LazyQuotes = true

	return c
}

func parseSpan(startField, endField string) (start, end int64, err error) {
	start, err = strconv.ParseInt(strings.TrimSpace(startField), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	end, err = strconv.ParseInt(strings.TrimSpace(endField), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}

	return start, end, nil
}
