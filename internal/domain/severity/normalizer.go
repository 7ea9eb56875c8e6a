// internal/domain/severity/normalizer.go
package severity

import (
	"strconv"
	"strings"
)

// Bucket is a canonical depression-severity band used by reporting.
type Bucket string

const (
	BucketUnknown          Bucket = "unknown"
	BucketNormal           Bucket = "normal"
	BucketMild             Bucket = "mild"
	BucketModerate         Bucket = "moderate"
	BucketModeratelySevere Bucket = "moderately_severe"
	BucketSevere           Bucket = "severe"
)

// labelSynonyms maps free-text severity labels, case/whitespace-normalized,
// to canonical buckets. The spelling variants come from older revisions of
// the screenings schema.
var labelSynonyms = map[string]Bucket{
	"normal":            "normal",
	"minimal":           "normal",
	"none":              "normal",
	"mild":              "mild",
	"low":               "mild",
	"moderate":          "moderate",
	"medium":            "moderate",
	"moderately severe": "severe",
	"moderate-severe":   "severe",
	"mod-severe":        "severe",
	"mod severe":        "severe",
	"severe":            "severe",
	"high":              "severe",
}

// labelFields are the row fields that may carry a severity label, tried in
// priority order.
var labelFields = []string{"nine_q_level", "phq9_level", "risk_level"}

// scoreFields are the row fields that may carry a numeric depression score,
// tried in priority order; the first parseable one wins.
var scoreFields = []string{"nine_q_score", "phq9_total", "phq9_score", "q9_total", "score_9q", "phq9"}

// Row is one screening row at the storage boundary. Legacy rows carry their
// severity under any of several field names; the adapter in the reporting
// layer builds a Row from whatever schema revision produced the record.
type Row map[string]any

// ParseNumber accepts numeric values directly, and strings that fully parse
// as a number after trimming. Empty and non-numeric strings yield no value,
// never zero: a null must not silently become a false "normal" bucket.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// FromScore maps a numeric depression score to a four-bucket severity band.
func FromScore(score float64) Bucket {
	switch {
	case score <= 4:
		return BucketNormal
	case score <= 9:
		return BucketMild
	case score <= 14:
		return BucketModerate
	default:
		return BucketSevere
	}
}

// FromScoreFine is the five-bucket variant: it inserts a moderately-severe
// band between moderate and severe.
func FromScoreFine(score float64) Bucket {
	switch {
	case score <= 4:
		return BucketNormal
	case score <= 9:
		return BucketMild
	case score <= 14:
		return BucketModerate
	case score <= 19:
		return BucketModeratelySevere
	default:
		return BucketSevere
	}
}

// Normalize resolves a row to a canonical severity bucket: first a free-text
// label matched against the synonym table, then the numeric score fields in
// priority order, else unknown.
func Normalize(row Row) Bucket {
	return normalize(row, FromScore)
}

// NormalizeFine resolves like Normalize but maps numeric scores through the
// five-bucket scale. Labels still resolve through the synonym table; the
// moderately-severe band only arises from a numeric score.
func NormalizeFine(row Row) Bucket {
	return normalize(row, FromScoreFine)
}

func normalize(row Row, fromScore func(float64) Bucket) Bucket {
	for _, field := range labelFields {
		raw, ok := row[field]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
		if s == "" {
			continue
		}
		if bucket, ok := labelSynonyms[s]; ok {
			return bucket
		}
	}
	for _, field := range scoreFields {
		if score, ok := ParseNumber(row[field]); ok {
			return fromScore(score)
		}
	}
	return BucketUnknown
}
