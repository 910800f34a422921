package commands

import (
	"syci/internal/config"
	"syci/internal/discovery"
	"syci/internal/domain"
	"syci/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	kind := domain.SidecarOutput
	if lc.config.Flags.Assembly {
		kind = domain.SidecarAssembly
	}

	resolver := discovery.NewResolver(lc.config.PathsToIgnore, kind)
	units, err := resolver.ResolveAll(args)
	if err != nil {
		return err
	}

	// Filter units
	units = lc.filter.FilterByName(units, lc.config.Flags.NameFilter)

	if len(units) == 0 {
		color.Yellow("No units found")
		return nil
	}

	lc.formatter.PrintUnitList(units, kind)
	return nil
}
