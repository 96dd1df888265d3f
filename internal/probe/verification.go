package probe

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
)

// Fixed bodies returned by the server.
const (
	msgMissingInput = "Error: 'textToAnalyze' query parameter is missing"
	msgInvalidInput = "Invalid text! Please try again!"
)

var sentenceRE = regexp.MustCompile(`^For the given statement, the system response is ` +
	`'anger': (\S+), 'disgust': (\S+), 'fear': (\S+), 'joy': (\S+) and 'sadness': (\S+)\. ` +
	`The dominant emotion is (\w+)\.$`)

var sentenceOrder = []string{"anger", "disgust", "fear", "joy", "sadness"}

// ParseSentence extracts the five scores and dominant emotion from a
// success body.
func ParseSentence(body string) (map[string]float64, string, error) {
	m := sentenceRE.FindStringSubmatch(body)
	if m == nil {
		return nil, "", fmt.Errorf("unexpected response body: %q", body)
	}
	scores := make(map[string]float64, len(sentenceOrder))
	for i, name := range sentenceOrder {
		if m[i+1] == "None" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return nil, "", fmt.Errorf("score %s: %w", name, err)
		}
		scores[name] = v
	}
	return scores, m[6], nil
}

// classify maps a response to an Outcome and checks it for consistency.
func classify(text string, status int, body string) (Outcome, string, error) {
	switch status {
	case http.StatusOK:
		scores, dominant, err := ParseSentence(body)
		if err != nil {
			return OutcomeMalformed, "", err
		}
		if err := checkDominant(scores, dominant); err != nil {
			return OutcomeMalformed, dominant, err
		}
		if text == "" {
			return OutcomeMalformed, dominant, fmt.Errorf("empty text was accepted")
		}
		return OutcomeDetected, dominant, nil
	case http.StatusBadRequest:
		switch body {
		case msgMissingInput:
			if text != "" {
				return OutcomeMalformed, "", fmt.Errorf("non-empty text reported as missing")
			}
			return OutcomeMissing, "", nil
		case msgInvalidInput:
			return OutcomeInvalid, "", nil
		}
		return OutcomeMalformed, "", fmt.Errorf("unexpected 400 body: %q", body)
	case http.StatusBadGateway:
		return OutcomeUnavailable, "", nil
	}
	return OutcomeMalformed, "", fmt.Errorf("unexpected status %d", status)
}

// checkDominant verifies dominant holds the highest of the five scores. Only
// the tracked scores are visible in the sentence, so a dominant emotion
// outside them cannot be checked.
func checkDominant(scores map[string]float64, dominant string) error {
	got, ok := scores[dominant]
	if !ok {
		return nil
	}
	for _, name := range sentenceOrder {
		if scores[name] > got {
			return fmt.Errorf("dominant %s (%v) is below %s (%v)", dominant, got, name, scores[name])
		}
	}
	return nil
}
