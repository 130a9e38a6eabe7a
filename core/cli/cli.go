package cli

import (
	cliContext "github.com/modelscout/modelscout/core/cli/context"
)

var CLI struct {
	cliContext.Context `embed:""`

	Run      RunCMD      `cmd:"" help:"Run the modelscout server, this is the default command if no other command is specified. Run 'modelscout run --help' for more information" default:"withargs"`
	Export   ExportCMD   `cmd:"" help:"Search a catalog and write a download manifest without starting the server"`
	Validate ValidateCMD `cmd:"" help:"Validate an existing manifest file"`
}
