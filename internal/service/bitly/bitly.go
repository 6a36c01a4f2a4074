package bitly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bitlink/config"
	"bitlink/internal/core"
	cErr "bitlink/internal/pkg/error"
	"bitlink/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type BitlyService struct {
	HTTPClient *http.Client
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	// 每次請求都從 store 取最新設定，設定檔熱更新後 token 立即生效
	store *config.Store
}

// NewBitlyService 建立 BitlyService
func NewBitlyService(
	store *config.Store,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	client *http.Client,
) Service {
	return &BitlyService{HTTPClient: client, trace: trace, metric: metric, store: store}
}

func (s *BitlyService) UserInfo(ctx context.Context) (*UserInfo, error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanBitlyUser))
	var returnedErr error
	defer func() { end(returnedErr) }()

	conf := s.store.Load().Bitly
	target, err := endpoint(conf.APIURL, "user")
	if err != nil {
		returnedErr = err
		return nil, returnedErr
	}

	var info UserInfo
	if returnedErr = s.do(ctx, span, conf, http.MethodGet, core.BitlyUserEndpoint, target, nil, &info); returnedErr != nil {
		return nil, returnedErr
	}
	if info.DefaultGroupGUID == nil || *info.DefaultGroupGUID == "" {
		returnedErr = cErr.ExternalResponseFormatError("user info has no default_group_guid")
		return nil, returnedErr
	}
	return &info, nil
}

// Shorten 先（依設定）確認長網址可連線，再呼叫 POST /shorten。
// 失敗時依錯誤類型回傳：
//   - 請求送不出去：ExternalRequestError
//   - 對方非 2xx：MapHttpStatusToError
//   - 回應解碼失敗或缺 link：ExternalResponseFormatError
func (s *BitlyService) Shorten(ctx context.Context, longURL, groupGUID string) (string, error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanBitlyShorten))
	var returnedErr error
	defer func() { end(returnedErr) }()

	span.SetAttributes(
		attribute.String("bitly.long_url", longURL),
		attribute.String("bitly.group_guid", groupGUID),
	)

	conf := s.store.Load().Bitly
	if conf.VerifyLongURL {
		if returnedErr = s.probe(ctx, longURL); returnedErr != nil {
			return "", returnedErr
		}
	}

	payload, err := json.Marshal(ShortenPayload{
		LongURL:   longURL,
		Domain:    conf.Domain,
		GroupGUID: groupGUID,
	})
	if err != nil {
		returnedErr = cErr.InternalServer("marshal shorten payload failed").WithCause(err)
		return "", returnedErr
	}

	target, err := endpoint(conf.APIURL, "shorten")
	if err != nil {
		returnedErr = err
		return "", returnedErr
	}

	var result ShortenResult
	if returnedErr = s.do(ctx, span, conf, http.MethodPost, core.BitlyShortenEndpoint, target, payload, &result); returnedErr != nil {
		return "", returnedErr
	}
	if result.Link == nil || *result.Link == "" {
		returnedErr = cErr.ExternalResponseFormatError("shorten response has no link")
		return "", returnedErr
	}
	return *result.Link, nil
}

func (s *BitlyService) ClickSummary(ctx context.Context, bitlinkID string) (int, error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanBitlyClicks))
	var returnedErr error
	defer func() { end(returnedErr) }()

	span.SetAttributes(attribute.String("bitly.bitlink", bitlinkID))

	conf := s.store.Load().Bitly
	// bitlinkID 已是 escaped path（例如 bit.ly/a%3Fb），JoinPath 不會再解碼成 query
	target, err := endpoint(conf.APIURL, "bitlinks", bitlinkID, "clicks", "summary")
	if err != nil {
		returnedErr = err
		return 0, returnedErr
	}
	query := url.Values{}
	query.Set("units", strconv.Itoa(conf.ClickUnits))
	target += "?" + query.Encode()

	var summary ClickSummary
	if returnedErr = s.do(ctx, span, conf, http.MethodGet, core.BitlyClicksSummaryEndpoint, target, nil, &summary); returnedErr != nil {
		return 0, returnedErr
	}
	if summary.TotalClicks == nil {
		returnedErr = cErr.ExternalResponseFormatError("clicks summary has no total_clicks")
		return 0, returnedErr
	}
	return *summary.TotalClicks, nil
}

// ---- helpers ----

// endpoint 在 api url 後接上已 escape 的路徑片段
func endpoint(apiURL string, elem ...string) (string, error) {
	target, err := url.JoinPath(apiURL, elem...)
	if err != nil {
		return "", cErr.InternalServer(fmt.Sprintf("invalid api url %q", apiURL)).WithCause(err)
	}
	return target, nil
}

// do 送出帶 Bearer token 的請求並把 2xx 回應解碼進 out
func (s *BitlyService) do(
	ctx context.Context,
	span trace.Span,
	conf config.Bitly,
	method string,
	endpoint core.BitlyEndpoint,
	target string,
	body []byte,
	out any,
) error {
	meta := core.TraceApiRequestMeta{Method: method, URL: target, Endpoint: string(endpoint)}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return cErr.InternalServer("create http request failed").WithCause(err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+conf.AccessToken)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		s.metric.ObserveRequest(endpoint, 0, time.Since(start))
		return cErr.ExternalRequestError(fmt.Sprintf("%s %s: %v", method, target, unwrapURLError(err))).WithCause(err)
	}
	defer resp.Body.Close()

	meta.Status = resp.StatusCode
	s.metric.ObserveRequest(endpoint, resp.StatusCode, time.Since(start))
	s.trace.ApplyTraceAttributes(span, meta)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return cErr.MapHttpStatusToError(resp.StatusCode, describeFailure(resp, b, target))
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return cErr.ExternalResponseFormatError("decode " + string(endpoint) + " response failed").WithCause(err)
	}
	return nil
}

// probe 對長網址本身發 GET，非 2xx 視為連結有誤
func (s *BitlyService) probe(ctx context.Context, longURL string) error {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanLongURLProbe))
	var returnedErr error
	defer func() { end(returnedErr) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, longURL, nil)
	if err != nil {
		returnedErr = cErr.BadRequestParams(fmt.Sprintf("%q is not a valid url", longURL)).WithCause(err)
		return returnedErr
	}

	start := time.Now()
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		s.metric.ObserveRequest(core.LongURLProbe, 0, time.Since(start))
		returnedErr = cErr.ExternalRequestError(fmt.Sprintf("GET %s: %v", longURL, unwrapURLError(err))).WithCause(err)
		return returnedErr
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	s.metric.ObserveRequest(core.LongURLProbe, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		returnedErr = cErr.MapHttpStatusToError(resp.StatusCode, fmt.Sprintf("%s for url: %s", resp.Status, longURL))
		return returnedErr
	}
	return nil
}

// describeFailure 組出「狀態 for url: 目標」，
// 若 Bitly 回了錯誤 JSON 則附上 message / description
func describeFailure(resp *http.Response, body []byte, target string) string {
	desc := fmt.Sprintf("%s for url: %s", resp.Status, target)
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		desc += " (" + apiErr.Message
		if apiErr.Description != "" {
			desc += ": " + apiErr.Description
		}
		desc += ")"
	}
	return desc
}

func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}
