package command

import (
	commandHandler "pantry/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewClassifyHandler)

type Command struct {
	classifyCommandHandler *commandHandler.ClassifyHandler
}

// NewCommand .
func NewCommand(
	classifyCommandHandler *commandHandler.ClassifyHandler,
) *Command {
	return &Command{
		classifyCommandHandler: classifyCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "classify [ingredient]",
			Short: "classify an ingredient from the command line",
			Args:  cobra.MinimumNArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				command, cleanup, err := newCmd()
				if err != nil {
					panic(err)
				}
				defer cleanup()

				command.classifyCommandHandler.Classify(cmd, args)
			},
		},
	)
}
