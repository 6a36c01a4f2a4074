package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	cErr "bitlink/internal/pkg/error"

	"go.uber.org/zap"
)

const consolePrompt = `Enter a link (or just press "Enter" to quit): `

// ErrReported 錯誤已經印給使用者，main 只需要設定 exit code
var ErrReported = errors.New("error already reported")

// LinkResolver 由 service.LinkService 實作
type LinkResolver interface {
	GroupGUID(ctx context.Context) (string, error)
	Message(ctx context.Context, raw string) (string, error)
}

type ConsoleHandler struct {
	logger *zap.Logger
	links  LinkResolver
}

func NewConsoleHandler(logger *zap.Logger, links LinkResolver) *ConsoleHandler {
	return &ConsoleHandler{
		logger: logger,
		links:  links,
	}
}

// Run 互動迴圈：讀一行、分派、印結果。空行或輸入結束即離開；
// 單次查詢失敗只回報，不中斷迴圈。
func (handler *ConsoleHandler) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	// 啟動時就取得 group guid，token 有問題直接失敗
	if _, err := handler.links.GroupGUID(ctx); err != nil {
		return fmt.Errorf("retrieve user info: %w", err)
	}

	// 用 ReadString 而非 Scanner：一行多長都照樣處理，不會因 token 上限中斷迴圈
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(out, consolePrompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		input := strings.TrimSpace(line)
		if input == "" {
			return nil
		}

		message, err := handler.links.Message(ctx, input)
		Report(out, message, err)
		fmt.Fprintln(out)
	}
}

// Report 印出單次查詢結果；錯誤依類型給不同提示
func Report(out io.Writer, message string, err error) {
	switch {
	case err == nil:
		fmt.Fprintln(out, message)
	case cErr.IsInvalidInput(err):
		fmt.Fprintln(out, "Invalid link:", err)
		fmt.Fprintln(out, "It is possible that your link contains a typo.")
	case cErr.IsHTTP(err):
		fmt.Fprintln(out, "HTTP error:", err)
		fmt.Fprintln(out, "It is possible that your link contains a typo.")
	default:
		fmt.Fprintln(out, "Other error:", err)
		fmt.Fprintln(out, "Please, contact script's author.")
	}
}
