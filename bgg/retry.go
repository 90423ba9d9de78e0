package bgg

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"time"
)

// RetryPolicy bounds how many times a request is reissued after a transient
// failure and how long to wait between attempts. MaxAttempts is the total
// attempt budget, including the first try. A Backoff factor above 1
// multiplies the delay for each subsequent attempt.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     float64
}

// DefaultRetryPolicy mirrors the interactive call sites: 3 attempts, flat
// 5 second delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 5 * time.Second, Backoff: 1}
}

// BatchRetryPolicy is the longer budget used for batch operations: 10
// attempts starting at 3 seconds, doubling each attempt.
func BatchRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 10, Delay: 3 * time.Second, Backoff: 2}
}

// attempts returns the effective attempt budget.
func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return 3
	}
	return p.MaxAttempts
}

// wait sleeps before retry number n (1-based), honoring cancellation.
func (p RetryPolicy) wait(ctx context.Context, n int) error {
	d := p.Delay
	if p.Backoff > 1 {
		for i := 1; i < n; i++ {
			d = time.Duration(float64(d) * p.Backoff)
		}
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// probeDocument inspects a response body before typed parsing. A body whose
// root element is a service error becomes a NotFoundError (semantic, never
// retried); a body that is not well-formed XML becomes a ParseError
// (transient, counted against the retry budget).
func probeDocument(body []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return newParseError("empty response document", nil)
			}
			return newParseError("response is not well-formed XML", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "error":
			var e xmlError
			_ = dec.DecodeElement(&e, &start)
			return newNotFoundError(e.Message)
		case "errors":
			var list xmlErrorList
			_ = dec.DecodeElement(&list, &start)
			if len(list.Errors) > 0 {
				return newNotFoundError(list.Errors[0].Message)
			}
			return newNotFoundError("")
		}
		return nil
	}
}
