package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/emodetect/internal/domain/emotion"
	. "github.com/smartystreets/goconvey/convey"
)

const happyResponse = `{"emotionPredictions":[{"emotion":{"anger":0.01,"disgust":0.01,"fear":0.01,"joy":0.95,"sadness":0.02},"target":"","emotionMentions":[]}],"producerId":{"name":"Ensemble Aggregated Emotion Workflow","version":"0.0.1"}}`

type capturedRequest struct {
	method      string
	contentType string
	modelID     string
	body        map[string]map[string]string
}

func fakeClassifier(status int, body string, captured *capturedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.method = r.Method
			captured.contentType = r.Header.Get("Content-Type")
			captured.modelID = r.Header.Get(ModelHeader)
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &captured.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func TestClientDetect(t *testing.T) {
	Convey("Given a classifier that answers with scores", t, func() {
		captured := &capturedRequest{}
		srv := fakeClassifier(http.StatusOK, happyResponse, captured)
		defer srv.Close()
		c := New(WithEndpoint(srv.URL))

		Convey("When detecting a happy statement", func() {
			a, err := c.Detect(context.Background(), "I am so happy today!")

			Convey("Then the request has the documented shape", func() {
				So(err, ShouldBeNil)
				So(captured.method, ShouldEqual, http.MethodPost)
				So(captured.contentType, ShouldEqual, "application/json")
				So(captured.modelID, ShouldEqual, DefaultModelID)
				So(captured.body["raw_document"]["text"], ShouldEqual, "I am so happy today!")
			})

			Convey("Then joy is dominant and all scores are kept in order", func() {
				So(a.Dominant, ShouldEqual, emotion.Joy)
				So(len(a.Scores), ShouldEqual, 5)
				So(a.Scores[0].Name, ShouldEqual, emotion.Anger)
				joy, ok := a.Scores.Get(emotion.Joy)
				So(ok, ShouldBeTrue)
				So(joy, ShouldEqual, 0.95)
			})
		})

		Convey("When detecting the empty string", func() {
			_, err := c.Detect(context.Background(), "")

			Convey("Then it is still sent", func() {
				So(err, ShouldBeNil)
				So(captured.body["raw_document"], ShouldContainKey, "text")
				So(captured.body["raw_document"]["text"], ShouldEqual, "")
			})
		})

		Convey("When a custom model id is configured", func() {
			c := New(WithEndpoint(srv.URL), WithModelID("emotion_custom"))
			_, err := c.Detect(context.Background(), "hello")

			Convey("Then the header carries it", func() {
				So(err, ShouldBeNil)
				So(captured.modelID, ShouldEqual, "emotion_custom")
			})
		})
	})
}

func TestClientInvalidInput(t *testing.T) {
	Convey("Given degenerate input", t, func() {
		cases := []struct {
			name   string
			status int
			body   string
		}{
			{"the classifier rejects it with 400", http.StatusBadRequest, `{"code":3,"message":"Invalid text"}`},
			{"the prediction list is empty", http.StatusOK, `{"emotionPredictions":[]}`},
			{"the prediction list is missing", http.StatusOK, `{}`},
			{"the emotion object is missing", http.StatusOK, `{"emotionPredictions":[{"target":""}]}`},
			{"the emotion object is empty", http.StatusOK, `{"emotionPredictions":[{"emotion":{}}]}`},
		}

		for _, tc := range cases {
			Convey("When "+tc.name, func() {
				srv := fakeClassifier(tc.status, tc.body, nil)
				defer srv.Close()

				a, err := New(WithEndpoint(srv.URL)).Detect(context.Background(), "!!!")

				Convey("Then it is reported as invalid input without a dominant emotion", func() {
					So(errors.Is(err, emotion.ErrInvalidInput), ShouldBeTrue)
					So(errors.Is(err, emotion.ErrClassifierUnavailable), ShouldBeFalse)
					So(a.HasDominant(), ShouldBeFalse)
				})
			})
		}
	})
}

func TestClientUnavailable(t *testing.T) {
	Convey("Given a failing classifier", t, func() {
		Convey("When it answers 503", func() {
			srv := fakeClassifier(http.StatusServiceUnavailable, "upstream down", nil)
			defer srv.Close()

			_, err := New(WithEndpoint(srv.URL)).Detect(context.Background(), "text")

			Convey("Then it is unavailable and carries the status", func() {
				So(errors.Is(err, emotion.ErrClassifierUnavailable), ShouldBeTrue)
				var cerr *Error
				So(errors.As(err, &cerr), ShouldBeTrue)
				So(cerr.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
				So(cerr.Body, ShouldEqual, "upstream down")
			})
		})

		Convey("When it answers with malformed JSON", func() {
			srv := fakeClassifier(http.StatusOK, `{"emotionPredictions":[`, nil)
			defer srv.Close()

			_, err := New(WithEndpoint(srv.URL)).Detect(context.Background(), "text")

			Convey("Then it is unavailable", func() {
				So(errors.Is(err, emotion.ErrClassifierUnavailable), ShouldBeTrue)
			})
		})

		Convey("When a score is not numeric", func() {
			srv := fakeClassifier(http.StatusOK, `{"emotionPredictions":[{"emotion":{"joy":"high"}}]}`, nil)
			defer srv.Close()

			_, err := New(WithEndpoint(srv.URL)).Detect(context.Background(), "text")

			Convey("Then it is unavailable", func() {
				So(errors.Is(err, emotion.ErrClassifierUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the endpoint cannot be reached", func() {
			srv := fakeClassifier(http.StatusOK, happyResponse, nil)
			url := srv.URL
			srv.Close()

			_, err := New(WithEndpoint(url)).Detect(context.Background(), "text")

			Convey("Then it is unavailable", func() {
				So(errors.Is(err, emotion.ErrClassifierUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the classifier is slower than the timeout", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			}))
			defer srv.Close()

			start := time.Now()
			_, err := New(WithEndpoint(srv.URL), WithTimeout(50*time.Millisecond)).Detect(context.Background(), "text")

			Convey("Then the call is abandoned as unavailable", func() {
				So(errors.Is(err, emotion.ErrClassifierUnavailable), ShouldBeTrue)
				So(time.Since(start), ShouldBeLessThan, time.Second)
			})
		})
	})
}

func TestErrorMessage(t *testing.T) {
	Convey("Given a classifier error", t, func() {
		err := unavailable(502, []byte("bad gateway"), errors.New("boom"))

		Convey("Then the message names kind, status and cause", func() {
			So(err.Error(), ShouldEqual, "emotion classifier unavailable: status 502: boom")
			So(errors.Unwrap(err).Error(), ShouldEqual, "boom")
		})

		Convey("Then long bodies are truncated", func() {
			long := make([]byte, maxErrorBody+10)
			So(len(invalid(400, long, nil).Body), ShouldEqual, maxErrorBody+3)
		})
	})
}
