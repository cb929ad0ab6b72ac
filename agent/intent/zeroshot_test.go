package intent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
)

func newZeroShotServer(t *testing.T, status int, body string) (*httptest.Server, *zeroShotRequest) {
	t.Helper()

	got := &zeroShotRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestZeroShotDetectListResponse(t *testing.T) {
	t.Parallel()

	srv, got := newZeroShotServer(t, http.StatusOK,
		`[{"label":"affirmation","score":0.91},{"label":"denial","score":0.05}]`)

	d, err := NewZeroShotDetector(srv.URL, "hf_test")
	require.NoError(t, err)

	sig, err := d.Detect(context.Background(), contractx.DetectRequest{Message: "sure, go ahead"})
	require.NoError(t, err)
	require.True(t, sig.Affirmation)
	require.False(t, sig.Purchase)
	require.Equal(t, "affirmation", sig.Label)
	require.Equal(t, SourceZeroShot, sig.Source)

	require.Equal(t, "sure, go ahead", got.Inputs)
	require.Len(t, got.Parameters.CandidateLabels, len(contractx.CandidateLabels))
}

func TestZeroShotDetectColumnResponse(t *testing.T) {
	t.Parallel()

	srv, _ := newZeroShotServer(t, http.StatusOK,
		`{"sequence":"x","labels":["denial","purchase inquiry"],"scores":[0.2,0.7]}`)

	d, err := NewZeroShotDetector(srv.URL, "hf_test")
	require.NoError(t, err)

	sig, err := d.Detect(context.Background(), contractx.DetectRequest{Message: "I'd like a hat"})
	require.NoError(t, err)
	require.True(t, sig.Purchase)
}

func TestZeroShotDetectErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: `{"error":"loading"}`, want: contractx.ErrClassifierUnavailable},
		{name: "error in ok body", status: http.StatusOK, body: `{"error":"model is loading"}`, want: contractx.ErrClassifierUnavailable},
		{name: "not json", status: http.StatusOK, body: `<html>`, want: contractx.ErrMalformedResponse},
		{name: "empty list", status: http.StatusOK, body: `[]`, want: contractx.ErrMalformedResponse},
		{name: "unknown label", status: http.StatusOK, body: `[{"label":"weather","score":1}]`, want: contractx.ErrMalformedResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newZeroShotServer(t, tc.status, tc.body)
			d, err := NewZeroShotDetector(srv.URL, "hf_test")
			require.NoError(t, err)

			_, err = d.Detect(context.Background(), contractx.DetectRequest{Message: "hi"})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestZeroShotDetectStatusErrorDetails(t *testing.T) {
	t.Parallel()

	srv, _ := newZeroShotServer(t, http.StatusTooManyRequests, "slow down")
	d, err := NewZeroShotDetector(srv.URL, "hf_test")
	require.NoError(t, err)

	_, err = d.Detect(context.Background(), contractx.DetectRequest{Message: "hi"})
	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.HTTPStatusCode())
	require.Equal(t, "slow down", statusErr.Body)
}

func TestZeroShotDetectEmptyMessageSkipsCall(t *testing.T) {
	t.Parallel()

	d, err := NewZeroShotDetector("http://127.0.0.1:1/unused", "hf_test")
	require.NoError(t, err)

	sig, err := d.Detect(context.Background(), contractx.DetectRequest{Message: "  "})
	require.NoError(t, err)
	require.False(t, sig.Purchase || sig.Affirmation)
}

func TestNewZeroShotDetectorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewZeroShotDetector("", "k")
	require.Error(t, err)
	_, err = NewZeroShotDetector("not a url", "k")
	require.Error(t, err)
	_, err = NewZeroShotDetector("https://example.com/m", " ")
	require.Error(t, err)
}
