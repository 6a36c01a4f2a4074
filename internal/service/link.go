package service

import (
	"context"
	"fmt"
	"strings"

	"bitlink/config"
	"bitlink/internal/core"
	"bitlink/internal/database/fluentd/model"
	"bitlink/internal/database/fluentd/repository"
	cErr "bitlink/internal/pkg/error"
	"bitlink/internal/service/bitly"
	"bitlink/internal/telemetry"
	"bitlink/utils/validate"

	"go.uber.org/zap"
)

type LinkService struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	metric  *telemetry.Metric
	bitly   bitly.Service
	logRepo *repository.LogRepository
	conf    *config.Configuration

	// 一個 session 只查一次 /user
	groupGUID string
}

func NewLinkService(
	logger *zap.Logger,
	conf *config.Configuration,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	bitlyService bitly.Service,
	logRepo *repository.LogRepository,
) *LinkService {
	return &LinkService{
		logger:    logger,
		trace:     trace,
		metric:    metric,
		bitly:     bitlyService,
		logRepo:   logRepo,
		conf:      conf,
		groupGUID: conf.Bitly.GroupGUID,
	}
}

// GroupGUID 回傳建立 bitlink 需要的 group guid；優先用設定值，否則查 /user 的 default_group_guid
func (s *LinkService) GroupGUID(ctx context.Context) (string, error) {
	if s.groupGUID != "" {
		return s.groupGUID, nil
	}
	info, err := s.bitly.UserInfo(ctx)
	if err != nil {
		return "", err
	}
	s.groupGUID = *info.DefaultGroupGUID
	s.logger.Debug("resolved default group guid",
		zap.String("login", info.Login),
		zap.String("group_guid", s.groupGUID),
	)
	return s.groupGUID, nil
}

func (s *LinkService) WhoAmI(ctx context.Context) (*bitly.UserInfo, error) {
	return s.bitly.UserInfo(ctx)
}

// Message 依輸入分派：bitlink 查點擊數，其餘縮網址；回傳要印給使用者的那一行
func (s *LinkService) Message(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if IsBitlink(raw, s.conf.Bitly.Domain) {
		clicks, err := s.Clicks(ctx, raw)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Number of clicks: %d", clicks), nil
	}
	link, err := s.Shorten(ctx, raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Bitlink: %s", link), nil
}

func (s *LinkService) Shorten(ctx context.Context, longURL string) (link string, returnedErr error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	meta := core.TraceLookupMeta{Input: longURL, Operation: string(core.OperationShorten)}
	defer func() {
		meta.Bitlink = link
		s.trace.ApplyTraceAttributes(span, meta)
		s.record(ctx, core.OperationShorten, model.LookupLog{
			Input:   longURL,
			LongURL: longURL,
			Bitlink: link,
		}, returnedErr)
		end(returnedErr)
	}()

	longURL = strings.TrimSpace(longURL)
	if err := validate.HTTPURL(longURL); err != nil {
		return "", err
	}

	guid, err := s.GroupGUID(ctx)
	if err != nil {
		return "", err
	}
	meta.GroupGUID = guid

	return s.bitly.Shorten(ctx, longURL, guid)
}

func (s *LinkService) Clicks(ctx context.Context, bitlink string) (clicks int, returnedErr error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	meta := core.TraceLookupMeta{Input: bitlink, Operation: string(core.OperationClicks)}
	id := ""
	defer func() {
		meta.Bitlink, meta.Clicks = id, clicks
		s.trace.ApplyTraceAttributes(span, meta)
		audit := model.LookupLog{Input: bitlink, Bitlink: id}
		if returnedErr == nil {
			audit.Clicks = &clicks
		}
		s.record(ctx, core.OperationClicks, audit, returnedErr)
		end(returnedErr)
	}()

	if !IsBitlink(bitlink, s.conf.Bitly.Domain) {
		return 0, cErr.BadRequestParams(fmt.Sprintf("%q is not a %s link", bitlink, s.conf.Bitly.Domain))
	}
	var err error
	if id, err = BitlinkID(bitlink); err != nil {
		return 0, cErr.BadRequestParams(fmt.Sprintf("%q is not a valid url", bitlink)).WithCause(err)
	}

	return s.bitly.ClickSummary(ctx, id)
}

// record 寫 metric 與 audit log；audit 失敗只記 warn，不影響查詢結果
func (s *LinkService) record(ctx context.Context, op core.Operation, audit model.LookupLog, err error) {
	audit.Operation = string(op)
	if err != nil {
		appErr := cErr.From(err)
		audit.Error = err.Error()
		audit.ErrorCode = appErr.ErrorCode()
		if cErr.IsHTTP(err) {
			// 對方回的狀態碼；請求沒送出去時為 502
			audit.Status = appErr.HttpCode()
		}
		s.metric.LookupFailed(op, failureReason(err))
		s.logger.Info("lookup failed",
			zap.String("operation", string(op)),
			zap.String("input", audit.Input),
			zap.Int("error_code", appErr.ErrorCode()),
			zap.Error(err),
		)
	} else {
		s.metric.LookupSucceeded(op)
	}

	if logErr := s.logRepo.LogLookup(context.WithoutCancel(ctx), audit); logErr != nil {
		s.logger.Warn("failed to send lookup log", zap.Error(logErr))
	}
}

func failureReason(err error) string {
	switch {
	case cErr.IsInvalidInput(err):
		return "invalid_input"
	case cErr.IsHTTP(err):
		return "http"
	default:
		return "other"
	}
}
