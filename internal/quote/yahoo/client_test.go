package yahoo_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stockinsight/internal/quote/yahoo"
)

// jsonResponse builds a JSON response with the given status and body.
func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const emptySummary = `{"quoteSummary":{"result":[{}],"error":null}}`

func TestNewClient(t *testing.T) {
	t.Parallel()

	// Assert: defaults produce a client.
	client, err := yahoo.NewClient()
	require.NoErrorf(t, err, "unexpected error: %v", err)
	require.NotNilf(t, client, "unexpected nil client")
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	t.Parallel()

	client, err := yahoo.NewClient(yahoo.WithBaseURL(""))
	require.Error(t, err)
	require.Nil(t, client)
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return jsonResponse(http.StatusOK, emptySummary), nil
		}).
		Times(1)

	// Arrange: create a new client.
	client, err := yahoo.NewClient(yahoo.WithHTTPClient(httpClient), yahoo.WithBaseURL(baseURL), yahoo.WithCrumb("c"))
	require.NoError(t, err)

	// Act
	_, err = client.GetQuoteSummary(t.Context(), "AAPL", nil)
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: custom header and default user agent are both sent
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			require.Contains(t, req.Header.Get("User-Agent"), "Mozilla/5.0")
			return jsonResponse(http.StatusOK, emptySummary), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom header.
	client, err := yahoo.NewClient(yahoo.WithHTTPClient(httpClient), yahoo.WithCrumb("c"), yahoo.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))
	require.NoError(t, err)

	// Act
	_, err = client.GetQuoteSummary(t.Context(), "AAPL", nil)
	require.NoError(t, err)
}

func TestWithHeader_UserAgentOverride(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "stockinsight/1.0", req.Header.Get("User-Agent"))
			return jsonResponse(http.StatusOK, emptySummary), nil
		}).
		Times(1)

	client, err := yahoo.NewClient(yahoo.WithHTTPClient(httpClient), yahoo.WithCrumb("c"), yahoo.WithHeader(http.Header{
		"User-Agent": []string{"stockinsight/1.0"},
	}))
	require.NoError(t, err)

	_, err = client.GetQuoteSummary(t.Context(), "AAPL", nil)
	require.NoError(t, err)
}

func TestSession_HandshakeOnceThenReuse(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller and http client
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: cookie, crumb, then two summary calls sharing the session
	gomock.InOrder(
		httpClient.EXPECT().
			Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				require.Equal(t, "http://cookies.test", req.URL.String())
				res := jsonResponse(http.StatusNotFound, "")
				res.Header.Add("Set-Cookie", "A3=d=session; Path=/")
				return res, nil
			}),
		httpClient.EXPECT().
			Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				require.Equal(t, "http://crumb.test", req.URL.String())
				ck, err := req.Cookie("A3")
				require.NoError(t, err)
				require.Equal(t, "d=session", ck.Value)
				return jsonResponse(http.StatusOK, "abc123"), nil
			}),
		httpClient.EXPECT().
			Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				require.Equal(t, "abc123", req.URL.Query().Get("crumb"))
				_, err := req.Cookie("A3")
				require.NoError(t, err)
				return jsonResponse(http.StatusOK, emptySummary), nil
			}).
			Times(2),
	)

	client, err := yahoo.NewClient(
		yahoo.WithHTTPClient(httpClient),
		yahoo.WithCookieURL("http://cookies.test"),
		yahoo.WithCrumbURL("http://crumb.test"),
	)
	require.NoError(t, err)

	// Act
	_, err = client.GetQuoteSummary(t.Context(), "AAPL", nil)
	require.NoError(t, err)
	_, err = client.GetQuoteSummary(t.Context(), "MSFT", nil)
	require.NoError(t, err)
}

func TestSession_InvalidCrumb(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	gomock.InOrder(
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, ""), nil),
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, "<html>denied</html>"), nil),
	)

	client, err := yahoo.NewClient(yahoo.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.GetQuoteSummary(t.Context(), "AAPL", nil)
	require.ErrorIs(t, err, yahoo.ErrCrumb)
}

func TestSession_ResetAfterUnauthorized(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the 401 drops the session, so the second lookup handshakes again
	gomock.InOrder(
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, ""), nil),
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, "first"), nil),
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusUnauthorized, `{}`), nil),
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, ""), nil),
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, "second"), nil),
		httpClient.EXPECT().
			Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				require.Equal(t, "second", req.URL.Query().Get("crumb"))
				return jsonResponse(http.StatusOK, emptySummary), nil
			}),
	)

	client, err := yahoo.NewClient(yahoo.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.GetQuoteSummary(t.Context(), "AAPL", nil)
	require.ErrorIs(t, err, yahoo.ErrUnauthorized)

	_, err = client.GetQuoteSummary(t.Context(), "AAPL", nil)
	require.NoError(t, err)
}
