package command

import (
	"fmt"

	"bitlink/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type LinkHandler struct {
	logger *zap.Logger
	links  *service.LinkService
}

func NewLinkHandler(logger *zap.Logger, links *service.LinkService) *LinkHandler {
	return &LinkHandler{
		logger: logger,
		links:  links,
	}
}

func (handler *LinkHandler) Shorten(cmd *cobra.Command, args []string) error {
	link, err := handler.links.Shorten(cmd.Context(), args[0])
	return handler.print(cmd, fmt.Sprintf("Bitlink: %s", link), err)
}

func (handler *LinkHandler) Clicks(cmd *cobra.Command, args []string) error {
	clicks, err := handler.links.Clicks(cmd.Context(), args[0])
	return handler.print(cmd, fmt.Sprintf("Number of clicks: %d", clicks), err)
}

func (handler *LinkHandler) Resolve(cmd *cobra.Command, args []string) error {
	message, err := handler.links.Message(cmd.Context(), args[0])
	return handler.print(cmd, message, err)
}

func (handler *LinkHandler) WhoAmI(cmd *cobra.Command, args []string) error {
	info, err := handler.links.WhoAmI(cmd.Context())
	if err != nil {
		Report(cmd.ErrOrStderr(), "", err)
		return ErrReported
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Login:       %s\n", info.Login)
	if info.Name != "" {
		fmt.Fprintf(out, "Name:        %s\n", info.Name)
	}
	fmt.Fprintf(out, "Group GUID:  %s\n", *info.DefaultGroupGUID)
	return nil
}

func (handler *LinkHandler) print(cmd *cobra.Command, message string, err error) error {
	if err != nil {
		Report(cmd.ErrOrStderr(), "", err)
		return ErrReported
	}
	Report(cmd.OutOrStdout(), message, nil)
	return nil
}
