package core

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanBitlyUser    TraceSpanName = "bitly.user"
	SpanBitlyShorten TraceSpanName = "bitly.shorten"
	SpanBitlyClicks  TraceSpanName = "bitly.clicks.summary"
	SpanLongURLProbe TraceSpanName = "long_url.probe"
)

// 指標名稱常數
type MetricName string

const (
	MetricApiRequestsTotal   MetricName = "api_requests_total"
	MetricApiRequestDuration MetricName = "api_request_duration_seconds"
	MetricLookupSuccessTotal MetricName = "lookup_success_total"
	MetricLookupFailTotal    MetricName = "lookup_fail_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint  MetricLabelName = "endpoint"
	MetricLabelStatus    MetricLabelName = "status"
	MetricLabelOperation MetricLabelName = "operation"
	MetricLabelReason    MetricLabelName = "reason"
)

type TraceApiRequestMeta struct {
	Method   string `trace:"http.method"`
	URL      string `trace:"http.url"`
	Endpoint string `trace:"bitly.endpoint"`
	Status   int    `trace:"http.status_code"`
}

type TraceLookupMeta struct {
	Input     string `trace:"lookup.input"`
	Operation string `trace:"lookup.operation"`
	Bitlink   string `trace:"lookup.bitlink,omitempty"`
	Clicks    int    `trace:"lookup.clicks,omitempty"`
	GroupGUID string `trace:"bitly.group_guid,omitempty"`
}
