package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotweb/internal/domain"
	apierrors "spotweb/internal/errors"
	"spotweb/internal/testutil"
)

// withoutSerializer checks that config carries SerializeParams and returns a
// copy with the func cleared so the rest can be compared with assert.Equal.
func withoutSerializer(t *testing.T, config *domain.RequestConfig) domain.RequestConfig {
	t.Helper()
	require.NotNil(t, config.ParamsSerializer)
	assert.Equal(t,
		reflect.ValueOf(SerializeParams).Pointer(),
		reflect.ValueOf(config.ParamsSerializer).Pointer(),
		"expected the comma-format serializer")

	cp := *config
	cp.ParamsSerializer = nil
	return cp
}

func TestNewBuilder_DefaultsBaseURL(t *testing.T) {
	builder := NewBuilder("", &testutil.Transport{}, testutil.Logger())
	assert.Equal(t, BaseAPIURL, builder.BaseURL())

	custom := NewBuilder("http://localhost:8080/v1", &testutil.Transport{}, testutil.Logger())
	assert.Equal(t, "http://localhost:8080/v1", custom.BaseURL())
}

func TestBuilder_Send_DefaultContentType(t *testing.T) {
	transport := &testutil.Transport{Response: &domain.Response{Data: "foo"}}
	builder := NewBuilder(BaseAPIURL, transport, testutil.Logger())

	_, err := builder.Send(context.Background(), "foo", "GET", "token", &domain.RequestOptions{
		Params: domain.Params{"bar": "baz"},
	})
	require.NoError(t, err)

	require.Len(t, transport.Calls(), 1)
	assert.Equal(t, domain.RequestConfig{
		Params:  domain.Params{"bar": "baz"},
		BaseURL: BaseAPIURL,
		Headers: map[string]string{
			"Authorization": "Bearer token",
			"Content-Type":  "application/json",
		},
		URL:    "foo",
		Method: "GET",
	}, withoutSerializer(t, transport.LastCall()))
}

func TestBuilder_Send_CustomContentType(t *testing.T) {
	transport := &testutil.Transport{Response: &domain.Response{Data: "foo"}}
	builder := NewBuilder(BaseAPIURL, transport, testutil.Logger())

	_, err := builder.Send(context.Background(), "foo", "GET", "token", &domain.RequestOptions{
		ContentType: "image/jpeg",
		Data:        "bar",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestConfig{
		Data:    "bar",
		BaseURL: BaseAPIURL,
		Headers: map[string]string{
			"Authorization": "Bearer token",
			"Content-Type":  "image/jpeg",
		},
		URL:    "foo",
		Method: "GET",
	}, withoutSerializer(t, transport.LastCall()))
}

func TestBuilder_Send_ReturnsResponseData(t *testing.T) {
	data := map[string]any{"id": "user-1", "display_name": "Someone"}
	transport := &testutil.Transport{Response: &domain.Response{
		Data:   data,
		Status: http.StatusOK,
	}}
	builder := NewBuilder(BaseAPIURL, transport, testutil.Logger())

	result, err := builder.Send(context.Background(), "me", "GET", "token", nil)
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestBuilder_Send_NilResponse(t *testing.T) {
	builder := NewBuilder(BaseAPIURL, &testutil.Transport{}, testutil.Logger())

	result, err := builder.Send(context.Background(), "me/player/pause", "PUT", "token", nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestBuilder_Send_PassesErrorsThroughUnchanged(t *testing.T) {
	t.Run("generic error", func(t *testing.T) {
		testErr := errors.New("foo")
		builder := NewBuilder(BaseAPIURL, &testutil.Transport{Err: testErr}, testutil.Logger())

		result, err := builder.Send(context.Background(), "bar", "GET", "token", nil)
		assert.Nil(t, result)
		assert.Same(t, testErr, err)
		assert.Equal(t, "foo", err.Error())
	})

	t.Run("rate limit error", func(t *testing.T) {
		testErr := &apierrors.TransportError{
			Message: "Error: Rate limit exceeded",
			Code:    "429",
			Response: &apierrors.ResponseInfo{
				Status:     429,
				StatusText: "Rate limit exceeded",
				Headers:    http.Header{"Retry-After": []string{"6"}},
			},
		}
		builder := NewBuilder(BaseAPIURL, &testutil.Transport{Err: testErr}, testutil.Logger())

		_, err := builder.Send(context.Background(), "bar", "GET", "token", nil)
		assert.Same(t, testErr, err)
		assert.Equal(t, &apierrors.TransportError{
			Message: "Error: Rate limit exceeded",
			Code:    "429",
			Response: &apierrors.ResponseInfo{
				Status:     429,
				StatusText: "Rate limit exceeded",
				Headers:    http.Header{"Retry-After": []string{"6"}},
			},
		}, err)
	})
}

func TestBuilder_Build_NoOptions(t *testing.T) {
	builder := NewBuilder(BaseAPIURL, &testutil.Transport{}, testutil.Logger())

	config := builder.Build("me", "DELETE", "abc", nil)

	assert.Equal(t, domain.RequestConfig{
		BaseURL: BaseAPIURL,
		URL:     "me",
		Method:  "DELETE",
		Headers: map[string]string{
			"Authorization": "Bearer abc",
			"Content-Type":  "application/json",
		},
	}, withoutSerializer(t, config))
	assert.Nil(t, config.Params)
	assert.Nil(t, config.Data)
}

func TestBuilder_Build_EmptyContentTypeKeepsDefault(t *testing.T) {
	builder := NewBuilder(BaseAPIURL, &testutil.Transport{}, testutil.Logger())

	config := builder.Build("me", "GET", "abc", &domain.RequestOptions{})
	assert.Equal(t, "application/json", config.Headers["Content-Type"])
	assert.Nil(t, config.Params)
	assert.Nil(t, config.Data)
}

func TestBuilder_Build_CopiesOptionsVerbatim(t *testing.T) {
	builder := NewBuilder(BaseAPIURL, &testutil.Transport{}, testutil.Logger())
	params := domain.Params{"ids": []string{"1", "2", "3"}}
	data := map[string]any{"uris": []string{"spotify:track:1"}}

	config := builder.Build("playlists/p/tracks", "POST", "t", &domain.RequestOptions{
		Params: params,
		Data:   data,
	})

	assert.Equal(t, params, config.Params)
	assert.Equal(t, data, config.Data)
	assert.Equal(t, "ids=1%2C2%2C3", config.ParamsSerializer(config.Params))
}

func TestBuilder_Build_MethodAndTokenUnvalidated(t *testing.T) {
	builder := NewBuilder(BaseAPIURL, &testutil.Transport{}, testutil.Logger())

	config := builder.Build("", "purge", "", nil)
	assert.Equal(t, "purge", config.Method)
	assert.Equal(t, "Bearer ", config.Headers["Authorization"])
}

func TestBuilder_Send_ConcurrentCallsAreIndependent(t *testing.T) {
	transport := &testutil.Transport{Response: &domain.Response{Data: "ok"}}
	builder := NewBuilder(BaseAPIURL, transport, testutil.Logger())

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := fmt.Sprintf("token-%d", i)
			_, err := builder.Send(context.Background(), "me", "GET", token, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	calls := transport.Calls()
	require.Len(t, calls, workers)

	seen := make(map[string]bool, workers)
	for _, config := range calls {
		seen[config.Headers["Authorization"]] = true
	}
	assert.Len(t, seen, workers)
}

func TestBuilder_Send_PassesContextToTransport(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request-1")

	transport := domain.TransportFunc(func(got context.Context, config *domain.RequestConfig) (*domain.Response, error) {
		assert.Equal(t, "request-1", got.Value(ctxKey{}))
		return &domain.Response{Data: config.URL}, nil
	})
	builder := NewBuilder(BaseAPIURL, transport, testutil.Logger())

	result, err := builder.Send(ctx, "me/player", "GET", "token", nil)
	require.NoError(t, err)
	assert.Equal(t, "me/player", result)
}
