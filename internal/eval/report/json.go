package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/metrics"
)

const (
	OutputSuffix = "-evaluation_result.json"
	jsonIndent   = "    "
	summaryID    = "SUMMARY"
)

// DefaultOutputPath derives the result file name from the predictions file:
// the extension is dropped and OutputSuffix appended.
func DefaultOutputPath(predictionsPath string) string {
	return strings.TrimSuffix(predictionsPath, filepath.Ext(predictionsPath)) + OutputSuffix
}

func WriteJSON(entries []Entry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteJSONFile encodes the whole report before touching path, so a failed
// encoding leaves no partial file behind.
func WriteJSONFile(r *Report, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(r.Entries, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case KindAdvisory:
		return json.Marshal(AdvisoryText(e.Advisory))
	case KindQuery:
		if e.Query == nil {
			return nil, fmt.Errorf("query entry without metrics")
		}
		return queryObject(*e.Query).MarshalJSON()
	case KindSummary:
		if e.Summary == nil {
			return nil, fmt.Errorf("summary entry without metrics")
		}
		return summaryObject(*e.Summary).MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown entry kind %s", e.Kind)
	}
}

type field struct {
	key   string
	value any
}

// object is a JSON object that keeps its keys in insertion order.
type object []field

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", f.key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func queryObject(m metrics.QueryMetrics) object {
	o := object{
		{"query ids", queryIDValue(m.QueryID)},
		{"Num Points", m.NumPoints},
		{"Max Good Points", m.MaxGoodPoints},
		{"Num Good Points", m.NumGoodPoints},
		{"local MRR", number(m.MRR)},
		{"Recall", number(m.Recall)},
		{"AP", number(m.AP)},
		{"NDCG@10", number(m.NDCG10)},
		{"NDCG@20", number(m.NDCG20)},
		{"NDCG", number(m.NDCG)},
	}
	return appendPrecision(o, m.Precision)
}

func summaryObject(s SummaryMetrics) object {
	o := object{
		{"query ids", summaryID},
		{"Num Points", s.NumPoints},
		{"Max Good Points", s.MaxGoodPoints},
		{"Num Good Points", s.NumGoodPoints},
		{"MRR", number(s.MRR)},
		{"Recall", number(s.Recall)},
		{"MAP", number(s.MAP)},
		{"NDCG@10", number(s.NDCG10)},
		{"NDCG@20", number(s.NDCG20)},
		{"NDCG", number(s.NDCG)},
	}
	return appendPrecision(o, s.Precision)
}

func appendPrecision(o object, precision [metrics.MaxPrecisionK]float64) object {
	for k, p := range precision {
		o = append(o, field{"P@" + strconv.Itoa(k+1), number(p)})
	}
	return o
}

// number renders floats the way earlier result files did: integral values
// keep a trailing ".0" so 1 and 1.0 stay distinguishable from counts.
func number(v float64) json.Number {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return json.Number(s)
}

// queryIDValue writes integer ids as JSON numbers and everything else as strings.
func queryIDValue(id string) any {
	if n, ok := integerID(id); ok {
		return n
	}
	return id
}

// integerID accepts only ids in canonical integer form, so "01" and "+1"
// stay distinct from "1".
func integerID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != id {
		return 0, false
	}
	return n, true
}
