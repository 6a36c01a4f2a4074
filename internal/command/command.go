package command

import (
	commandHandler "bitlink/internal/command/handler"
	"bitlink/internal/service"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewConsoleHandler,
	commandHandler.NewLinkHandler,
	wire.Bind(new(commandHandler.LinkResolver), new(*service.LinkService)),
)

type Command struct {
	consoleCommandHandler *commandHandler.ConsoleHandler
	linkCommandHandler    *commandHandler.LinkHandler
}

// NewCommand .
func NewCommand(
	consoleCommandHandler *commandHandler.ConsoleHandler,
	linkCommandHandler *commandHandler.LinkHandler,
) *Command {
	return &Command{
		consoleCommandHandler: consoleCommandHandler,
		linkCommandHandler:    linkCommandHandler,
	}
}

// Register 掛上所有子命令；root 本身不帶參數時進入互動模式。
// newCmd 在命令真正執行時才呼叫（此時設定已載入），newVersion 不需要 token。
func Register(
	rootCmd *cobra.Command,
	newCmd func() (*Command, func(), error),
	newVersion func() *commandHandler.VersionHandler,
) {
	withCommand := func(run func(command *Command, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return run(command, cmd, args)
		}
	}

	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = withCommand(func(command *Command, cmd *cobra.Command, args []string) error {
		return command.consoleCommandHandler.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	})

	var asJSON bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print name, version and Go runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newVersion().Print(cmd, asJSON)
		},
	}
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "shorten <long-url>",
			Short: "Create a bitlink for a long URL",
			Args:  cobra.ExactArgs(1),
			RunE: withCommand(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.linkCommandHandler.Shorten(cmd, args)
			}),
		},
		&cobra.Command{
			Use:   "clicks <bitlink>",
			Short: "Print the total click count of a bitlink",
			Args:  cobra.ExactArgs(1),
			RunE: withCommand(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.linkCommandHandler.Clicks(cmd, args)
			}),
		},
		&cobra.Command{
			Use:   "resolve <link>",
			Short: "Shorten a long URL or count clicks of a bitlink, like the interactive mode",
			Args:  cobra.ExactArgs(1),
			RunE: withCommand(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.linkCommandHandler.Resolve(cmd, args)
			}),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Print the account login and default group GUID",
			Args:  cobra.NoArgs,
			RunE: withCommand(func(command *Command, cmd *cobra.Command, args []string) error {
				return command.linkCommandHandler.WhoAmI(cmd, args)
			}),
		},
		versionCmd,
	)
}
