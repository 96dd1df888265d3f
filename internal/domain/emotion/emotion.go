// Package emotion holds the emotion score model, dominant-emotion selection
// and the sentence rendered back to users.
package emotion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tracked emotion names, in display order.
const (
	Anger   = "anger"
	Disgust = "disgust"
	Fear    = "fear"
	Joy     = "joy"
	Sadness = "sadness"
)

// DominantKey is the field name the dominant emotion is reported under.
const DominantKey = "dominant_emotion"

// Tracked lists the emotions rendered in a response sentence.
var Tracked = []string{Anger, Disgust, Fear, Joy, Sadness}

// Score is a single emotion label with its classifier score. Integer is set
// when the classifier sent the value as a JSON integer literal.
type Score struct {
	Name    string
	Value   float64
	Integer bool
}

// String renders the value the way the classifier's number type prints it.
func (sc Score) String() string {
	if sc.Integer {
		return strconv.FormatFloat(sc.Value, 'f', -1, 64)
	}
	return FormatScore(sc.Value)
}

// Scores is an ordered list of scores, kept in the order the classifier
// returned them.
type Scores []Score

// Get returns the score for name.
func (s Scores) Get(name string) (float64, bool) {
	sc, ok := s.Lookup(name)
	return sc.Value, ok
}

// Lookup returns the full Score entry for name.
func (s Scores) Lookup(name string) (Score, bool) {
	if i := s.index(name); i >= 0 {
		return s[i], true
	}
	return Score{}, false
}

func (s Scores) index(name string) int {
	for i, sc := range s {
		if sc.Name == name {
			return i
		}
	}
	return -1
}

// Map returns the scores as a plain map.
func (s Scores) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, sc := range s {
		m[sc.Name] = sc.Value
	}
	return m
}

// Dominant returns the name with the highest score. Ties go to the first
// name in order. It reports false for an empty list.
func (s Scores) Dominant() (string, bool) {
	if len(s) == 0 {
		return "", false
	}
	best := 0
	for i := 1; i < len(s); i++ {
		if s[i].Value > s[best].Value {
			best = i
		}
	}
	return s[best].Name, true
}

// UnmarshalJSON decodes a JSON object of name -> number, keeping key order.
// A repeated key keeps its first position and takes the last value.
func (s *Scores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("emotion scores: expected object, got %v", tok)
	}

	out := Scores{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("emotion scores: unexpected key %v", keyTok)
		}

		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return fmt.Errorf("emotion scores: %q: %w", key, err)
		}
		v, err := num.Float64()
		if err != nil {
			return fmt.Errorf("emotion scores: %q: %w", key, err)
		}
		sc := Score{Name: key, Value: v, Integer: isIntegerLiteral(num)}
		if i := out.index(key); i >= 0 {
			out[i] = sc
			continue
		}
		out = append(out, sc)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func isIntegerLiteral(n json.Number) bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// MarshalJSON encodes the scores as an object in their current order.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, sc.Name, sc.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Analysis is a classification result: the scores plus the derived dominant
// emotion. An empty Dominant means none could be derived.
type Analysis struct {
	Scores   Scores
	Dominant string
}

// NewAnalysis computes the dominant emotion for scores.
func NewAnalysis(scores Scores) Analysis {
	dom, _ := scores.Dominant()
	return Analysis{Scores: scores, Dominant: dom}
}

// HasDominant reports whether a dominant emotion was derived.
func (a Analysis) HasDominant() bool {
	return a.Dominant != ""
}

// MarshalJSON renders the flat mapping of scores with dominant_emotion
// appended; dominant_emotion is null when absent.
func (a Analysis) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, sc := range a.Scores {
		if err := writeMember(&buf, sc.Name, sc.Value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	buf.WriteString(strconv.Quote(DominantKey))
	buf.WriteByte(':')
	if a.HasDominant() {
		b, err := json.Marshal(a.Dominant)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	} else {
		buf.WriteString("null")
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, v float64) error {
	k, err := json.Marshal(name)
	if err != nil {
		return err
	}
	n, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("emotion scores: %q: %w", name, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(n)
	return nil
}

// Sentence renders the user-facing response for a, e.g.
//
//	For the given statement, the system response is 'anger': 0.01, ... The dominant emotion is joy.
func Sentence(a Analysis) string {
	v := func(name string) string {
		if sc, ok := a.Scores.Lookup(name); ok {
			return sc.String()
		}
		return "None"
	}

	var b strings.Builder
	b.WriteString("For the given statement, the system response is ")
	fmt.Fprintf(&b, "'%s': %s, '%s': %s, '%s': %s, ", Anger, v(Anger), Disgust, v(Disgust), Fear, v(Fear))
	fmt.Fprintf(&b, "'%s': %s and '%s': %s. ", Joy, v(Joy), Sadness, v(Sadness))
	fmt.Fprintf(&b, "The dominant emotion is %s.", a.Dominant)
	return b.String()
}

// FormatScore prints x as the shortest decimal that round-trips. Integral
// values keep a trailing ".0"; magnitudes outside [1e-4, 1e16) use an
// exponent with at least two digits (1e-05).
func FormatScore(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	abs := math.Abs(x)
	if x != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
