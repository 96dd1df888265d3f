package emotion

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func happyScores() Scores {
	return Scores{
		{Name: Anger, Value: 0.01},
		{Name: Disgust, Value: 0.01},
		{Name: Fear, Value: 0.01},
		{Name: Joy, Value: 0.95},
		{Name: Sadness, Value: 0.02},
	}
}

func TestDominant(t *testing.T) {
	Convey("Given emotion scores", t, func() {
		Convey("When one emotion clearly leads", func() {
			dom, ok := happyScores().Dominant()

			Convey("Then it is the dominant emotion", func() {
				So(ok, ShouldBeTrue)
				So(dom, ShouldEqual, Joy)
			})
		})

		Convey("When two emotions tie for the maximum", func() {
			scores := Scores{
				{Name: Sadness, Value: 0.4},
				{Name: Anger, Value: 0.4},
				{Name: Joy, Value: 0.2},
			}
			dom, _ := scores.Dominant()

			Convey("Then the first one in received order wins", func() {
				So(dom, ShouldEqual, Sadness)
			})
		})

		Convey("When the list is empty", func() {
			dom, ok := Scores{}.Dominant()

			Convey("Then no dominant emotion is reported", func() {
				So(ok, ShouldBeFalse)
				So(dom, ShouldEqual, "")
				So(NewAnalysis(nil).HasDominant(), ShouldBeFalse)
			})
		})

		Convey("When the maximum sits at the end", func() {
			scores := Scores{{Name: Anger, Value: 0.1}, {Name: Fear, Value: 0.7}}
			a := NewAnalysis(scores)

			Convey("Then the scan still finds it", func() {
				So(a.Dominant, ShouldEqual, Fear)
				So(a.HasDominant(), ShouldBeTrue)
			})
		})
	})
}

func TestScoresJSON(t *testing.T) {
	Convey("Given a JSON emotion object", t, func() {
		Convey("When it is decoded", func() {
			var s Scores
			err := json.Unmarshal([]byte(`{"sadness":0.5,"joy":0.5,"anger":1e-05}`), &s)

			Convey("Then key order is preserved", func() {
				So(err, ShouldBeNil)
				So(len(s), ShouldEqual, 3)
				So(s[0].Name, ShouldEqual, Sadness)
				So(s[1].Name, ShouldEqual, Joy)
				So(s[2].Value, ShouldEqual, 1e-05)
				dom, _ := s.Dominant()
				So(dom, ShouldEqual, Sadness)
			})
		})

		Convey("When a score is not a number", func() {
			var s Scores
			err := json.Unmarshal([]byte(`{"joy":"very"}`), &s)

			Convey("Then decoding fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the value is not an object", func() {
			var s Scores
			err := json.Unmarshal([]byte(`[0.1, 0.2]`), &s)

			Convey("Then decoding fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the value is null", func() {
			s := Scores{{Name: Joy, Value: 1}}
			err := json.Unmarshal([]byte(`null`), &s)

			Convey("Then the list is cleared", func() {
				So(err, ShouldBeNil)
				So(s, ShouldBeNil)
			})
		})

		Convey("When scores are encoded again", func() {
			b, err := json.Marshal(Scores{{Name: Joy, Value: 0.9}, {Name: Anger, Value: 0.1}})

			Convey("Then the order survives", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"joy":0.9,"anger":0.1}`)
			})
		})
	})
}

func TestAnalysisJSON(t *testing.T) {
	Convey("Given an analysis", t, func() {
		Convey("When a dominant emotion exists", func() {
			b, err := json.Marshal(NewAnalysis(happyScores()))

			Convey("Then it is appended to the flat mapping", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual,
					`{"anger":0.01,"disgust":0.01,"fear":0.01,"joy":0.95,"sadness":0.02,"dominant_emotion":"joy"}`)
			})
		})

		Convey("When no dominant emotion exists", func() {
			b, err := json.Marshal(Analysis{})

			Convey("Then dominant_emotion is null", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"dominant_emotion":null}`)
			})
		})
	})
}

func TestScoresJSONEdgeCases(t *testing.T) {
	Convey("Given an emotion object that repeats a key", t, func() {
		var s Scores
		err := json.Unmarshal([]byte(`{"anger":0.9,"disgust":0.01,"fear":0.01,"joy":0.05,"sadness":0.02,"anger":0.1}`), &s)

		Convey("Then the key keeps its first position with the last value", func() {
			So(err, ShouldBeNil)
			So(len(s), ShouldEqual, 5)
			So(s[0].Name, ShouldEqual, Anger)
			So(s[0].Value, ShouldEqual, 0.1)
			dom, _ := s.Dominant()
			So(dom, ShouldEqual, Joy)
			So(Sentence(NewAnalysis(s)), ShouldStartWith,
				"For the given statement, the system response is 'anger': 0.1, ")
		})
	})

	Convey("Given an emotion object with integer literals", t, func() {
		var s Scores
		err := json.Unmarshal([]byte(`{"anger":0.25,"disgust":0,"fear":1,"joy":1.0,"sadness":2e-1}`), &s)

		Convey("Then integers render without a fractional part and floats keep theirs", func() {
			So(err, ShouldBeNil)
			So(s[1].Integer, ShouldBeTrue)
			So(s[3].Integer, ShouldBeFalse)
			So(Sentence(NewAnalysis(s)), ShouldEqual, "For the given statement, the system response is "+
				"'anger': 0.25, 'disgust': 0, 'fear': 1, 'joy': 1.0 and 'sadness': 0.2. The dominant emotion is fear.")
		})
	})
}

func TestSentence(t *testing.T) {
	Convey("Given the happy statement", t, func() {
		s := Sentence(NewAnalysis(happyScores()))

		Convey("Then the sentence matches the documented format", func() {
			So(s, ShouldEqual, "For the given statement, the system response is 'anger': 0.01, "+
				"'disgust': 0.01, 'fear': 0.01, 'joy': 0.95 and 'sadness': 0.02. The dominant emotion is joy.")
		})

		Convey("Then rendering is deterministic", func() {
			So(Sentence(NewAnalysis(happyScores())), ShouldEqual, s)
		})
	})

	Convey("Given scores with a tracked emotion missing and an extra one present", t, func() {
		a := NewAnalysis(Scores{
			{Name: "surprise", Value: 0.9},
			{Name: Anger, Value: 0.1},
			{Name: Disgust, Value: 0},
			{Name: Fear, Value: 1},
			{Name: Joy, Value: 0.25},
		})

		Convey("Then the missing score renders as None and extras are not listed", func() {
			So(Sentence(a), ShouldEqual, "For the given statement, the system response is 'anger': 0.1, "+
				"'disgust': 0.0, 'fear': 1.0, 'joy': 0.25 and 'sadness': None. The dominant emotion is fear.")
		})
	})
}

func TestFormatScore(t *testing.T) {
	Convey("Given scores to format", t, func() {
		cases := map[float64]string{
			0.95:                "0.95",
			0.01:                "0.01",
			0:                   "0.0",
			1:                   "1.0",
			0.0001:              "0.0001",
			0.00001:             "1e-05",
			0.000012345:         "1.2345e-05",
			0.9968273639678955:  "0.9968273639678955",
			12345678901234567.0: "1.2345678901234568e+16",
		}
		for in, want := range cases {
			So(FormatScore(in), ShouldEqual, want)
		}
	})
}
